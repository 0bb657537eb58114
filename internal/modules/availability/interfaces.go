package availability

import (
	"context"
	"time"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type roomFinder interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	FreeRoomsBetween(ctx context.Context, checkIn, checkOut time.Time, f repository.FreeRoomFilter) ([]domain.Room, error)
}

type bookingReader interface {
	FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error)
}
