package availability

import "hoteldesk/internal/domain"

// FreeRoomsResult lists rooms bookable for the whole half-open range.
type FreeRoomsResult struct {
	CheckIn  string        `json:"check_in"`
	CheckOut string        `json:"check_out"`
	Rooms    []domain.Room `json:"rooms"`
}

// RoomAvailability answers "can this room take this range", with the
// conflicting bookings when it cannot.
type RoomAvailability struct {
	RoomID    int64            `json:"room_id"`
	CheckIn   string           `json:"check_in"`
	CheckOut  string           `json:"check_out"`
	Available bool             `json:"available"`
	Conflicts []domain.Booking `json:"conflicts,omitempty"`
}
