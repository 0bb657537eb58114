package availability

import (
	"context"
	"strings"
	"time"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type Service struct {
	rooms    roomFinder
	bookings bookingReader
}

func NewService(rooms roomFinder, bookings bookingReader) *Service {
	return &Service{rooms: rooms, bookings: bookings}
}

const dateLayout = "2006-01-02"

func parseRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse(dateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	out, err := time.Parse(dateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if !in.Before(out) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return in, out, nil
}

// FreeRooms lists rooms with no active booking intersecting the half-open
// range. A booking checking out on checkIn day does not block the room.
func (s *Service) FreeRooms(ctx context.Context, checkIn, checkOut string, f repository.FreeRoomFilter) (*FreeRoomsResult, error) {
	in, out, err := parseRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.FreeRoomsBetween(ctx, in, out, f)
	if err != nil {
		return nil, err
	}

	return &FreeRoomsResult{
		CheckIn:  in.Format(dateLayout),
		CheckOut: out.Format(dateLayout),
		Rooms:    rooms,
	}, nil
}

// CheckRoom reports whether one specific room can take the range, returning
// the conflicting bookings when it cannot.
func (s *Service) CheckRoom(ctx context.Context, roomID int64, checkIn, checkOut string) (*RoomAvailability, error) {
	in, out, err := parseRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	result := &RoomAvailability{
		RoomID:   room.ID,
		CheckIn:  in.Format(dateLayout),
		CheckOut: out.Format(dateLayout),
	}

	if room.Retired || room.Status == domain.RoomMaintenance {
		return result, nil
	}

	conflicts, err := s.bookings.FindConflicts(ctx, roomID, in, out, 0)
	if err != nil {
		return nil, err
	}
	result.Conflicts = conflicts
	result.Available = len(conflicts) == 0
	return result, nil
}
