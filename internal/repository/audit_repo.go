package repository

import (
	"context"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

// AuditRepository persists room-status audit records. Append-only: there is
// deliberately no update or delete method.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, a *domain.RoomStatusAudit) error {
	m := roomStatusAuditModel{
		RoomID:    a.RoomID,
		ActorID:   a.ActorID,
		ActorRole: string(a.ActorRole),
		OldStatus: string(a.OldStatus),
		NewStatus: string(a.NewStatus),
		Forced:    a.Forced,
		Reason:    a.Reason,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*a = domain.RoomStatusAudit{
		ID:        m.ID,
		RoomID:    m.RoomID,
		ActorID:   m.ActorID,
		ActorRole: domain.Role(m.ActorRole),
		OldStatus: domain.RoomStatus(m.OldStatus),
		NewStatus: domain.RoomStatus(m.NewStatus),
		Forced:    m.Forced,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
	return nil
}

func (r *AuditRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.RoomStatusAudit, error) {
	var rows []roomStatusAuditModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.RoomStatusAudit, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.RoomStatusAudit{
			ID:        m.ID,
			RoomID:    m.RoomID,
			ActorID:   m.ActorID,
			ActorRole: domain.Role(m.ActorRole),
			OldStatus: domain.RoomStatus(m.OldStatus),
			NewStatus: domain.RoomStatus(m.NewStatus),
			Forced:    m.Forced,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
