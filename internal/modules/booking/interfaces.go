package booking

import (
	"context"
	"time"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type bookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	CreateWithAdvance(ctx context.Context, b *domain.Booking, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error)
	ActiveBookingForRoomOn(ctx context.Context, roomID int64, day time.Time) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
}

type roomRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error
}

type guestReader interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
