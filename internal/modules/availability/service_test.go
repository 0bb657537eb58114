package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type MockRoomFinder struct {
	mock.Mock
}

func (m *MockRoomFinder) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomFinder) FreeRoomsBetween(ctx context.Context, checkIn, checkOut time.Time, f repository.FreeRoomFilter) ([]domain.Room, error) {
	args := m.Called(ctx, checkIn, checkOut, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestFreeRooms_RejectsBadRanges(t *testing.T) {
	svc := NewService(new(MockRoomFinder), new(MockBookingReader))

	tests := []struct {
		name    string
		in, out string
	}{
		{"empty dates", "", ""},
		{"bad format", "01/07/2025", "04/07/2025"},
		{"inverted range", "2025-07-04", "2025-07-01"},
		{"zero nights", "2025-07-01", "2025-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FreeRooms(context.Background(), tt.in, tt.out, repository.FreeRoomFilter{})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCheckRoom_ReportsConflicts(t *testing.T) {
	rooms := new(MockRoomFinder)
	bookings := new(MockBookingReader)
	svc := NewService(rooms, bookings)

	conflict := domain.Booking{ID: 42, RoomID: 7, Status: domain.BookingBooked}
	rooms.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Room{ID: 7, Status: domain.RoomAvailable}, nil)
	bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{conflict}, nil)

	result, err := svc.CheckRoom(context.Background(), 7, "2025-07-01", "2025-07-04")

	assert.NoError(t, err)
	assert.False(t, result.Available)
	assert.Len(t, result.Conflicts, 1)
}

func TestCheckRoom_MaintenanceNeverAvailable(t *testing.T) {
	rooms := new(MockRoomFinder)
	bookings := new(MockBookingReader)
	svc := NewService(rooms, bookings)

	rooms.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Room{ID: 7, Status: domain.RoomMaintenance}, nil)

	result, err := svc.CheckRoom(context.Background(), 7, "2025-07-01", "2025-07-04")

	assert.NoError(t, err)
	assert.False(t, result.Available)
	bookings.AssertNotCalled(t, "FindConflicts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
