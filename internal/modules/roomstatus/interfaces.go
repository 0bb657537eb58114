package roomstatus

import (
	"context"
	"time"

	"hoteldesk/internal/domain"
)

type roomRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, branchID int64) ([]domain.Room, error)
	UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
}

type bookingReader interface {
	ActiveBookingForRoomOn(ctx context.Context, roomID int64, day time.Time) (*domain.Booking, error)
	HasRecentCheckout(ctx context.Context, roomID int64, day time.Time) (bool, error)
}

type auditWriter interface {
	Create(ctx context.Context, a *domain.RoomStatusAudit) error
}
