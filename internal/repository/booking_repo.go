package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows ListBookings. Zero values mean "no filter".
type BookingFilter struct {
	RoomID  int64
	GuestID int64
	Status  domain.BookingStatus
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

// CreateWithAdvance inserts the booking and its advance payment as one
// transaction: either both rows commit or neither does. The payment's
// BookingID is filled in from the freshly inserted booking.
func (r *BookingRepository) CreateWithAdvance(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	m := toBookingModel(b)
	var pm paymentModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		pm = paymentModel{
			BookingID:        m.ID,
			Amount:           p.Amount,
			Method:           string(p.Method),
			PaidAt:           p.PaidAt,
			PaymentReference: p.PaymentReference,
		}
		return tx.Create(&pm).Error
	})
	if err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	*p = *toDomainPayment(pm)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindConflicts returns active bookings for the room whose half-open
// [check_in, check_out) range intersects the candidate range. The predicate
// is the canonical interval intersection: existing.check_in < cand.check_out
// AND existing.check_out > cand.check_in.
func (r *BookingRepository) FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{string(domain.BookingBooked), string(domain.BookingCheckedIn)}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Order("check_in_date")
	if excludeBookingID > 0 {
		q = q.Where("booking_id <> ?", excludeBookingID)
	}
	if tx := q.Find(&rows); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ActiveBookingForRoomOn returns the active booking whose range covers day,
// or nil when the room is unclaimed that day.
func (r *BookingRepository) ActiveBookingForRoomOn(ctx context.Context, roomID int64, day time.Time) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{string(domain.BookingBooked), string(domain.BookingCheckedIn)}).
		Where("check_in_date <= ? AND check_out_date > ?", day, day).
		First(&m)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// HasRecentCheckout reports whether a stay on the room ended yesterday or
// today, which marks the room Dirty on the housekeeping board until the next
// arrival claims it.
func (r *BookingRepository) HasRecentCheckout(ctx context.Context, roomID int64, day time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{string(domain.BookingCheckedOut), string(domain.BookingCancelled)}).
		Where("check_out_date >= ? AND check_out_date <= ?", day.AddDate(0, 0, -1), day).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("booking_id = ?", bookingID).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.RoomID > 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.GuestID > 0 {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if !f.From.IsZero() {
		q = q.Where("check_in_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("check_out_date <= ?", f.To)
	}

	var total int64
	if tx := q.Count(&total); tx.Error != nil {
		return nil, 0, tx.Error
	}

	limit := f.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	var rows []bookingModel
	tx := q.Order("check_in_date DESC, booking_id DESC").Limit(limit).Offset(f.Offset).Find(&rows)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}
