package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context, branchID int64) ([]domain.Room, error) {
	var rows []roomModel
	q := r.db.WithContext(ctx).Where("retired = ?", false)
	if branchID > 0 {
		q = q.Where("branch_id = ?", branchID)
	}
	if tx := q.Order("room_number").Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// UpdateStatus writes the persisted room status. Only the room status state
// machine and the booking lifecycle controller call this.
func (r *RoomRepository) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("room_id = ?", roomID).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FreeRoomFilter narrows FreeRoomsBetween.
type FreeRoomFilter struct {
	RoomTypeID  int64
	Capacity    int
	ExcludeRoom int64
	Limit       int
}

// FreeRoomsBetween lists Available, non-retired rooms with no active booking
// intersecting [checkIn, checkOut). Same intersection predicate as
// FindConflicts, existence-negated.
func (r *RoomRepository) FreeRoomsBetween(ctx context.Context, checkIn, checkOut time.Time, f FreeRoomFilter) ([]domain.Room, error) {
	limit := f.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Model(&roomModel{}).
		Where("status = ?", string(domain.RoomAvailable)).
		Where("retired = ?", false).
		Where(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = rooms.room_id
			  AND b.status IN ('Booked', 'Checked-In')
			  AND b.check_in_date < ? AND b.check_out_date > ?
		)`, checkOut, checkIn)
	if f.RoomTypeID > 0 {
		q = q.Where("room_type_id = ?", f.RoomTypeID)
	}
	if f.Capacity > 0 {
		q = q.Where("room_type_id IN (SELECT room_type_id FROM room_types WHERE capacity >= ?)", f.Capacity)
	}
	if f.ExcludeRoom > 0 {
		q = q.Where("room_id <> ?", f.ExcludeRoom)
	}

	var rows []roomModel
	if tx := q.Order("room_number, room_id").Limit(limit).Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}
