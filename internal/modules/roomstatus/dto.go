package roomstatus

import "hoteldesk/internal/domain"

type TransitionOption struct {
	Status domain.RoomStatus `json:"status"`
	Reason string            `json:"reason"`
}

// TransitionReport lists, for one room, which manual status changes are
// allowed right now and why the others are blocked.
type TransitionReport struct {
	Room               *domain.Room             `json:"room"`
	CurrentStatus      domain.RoomStatus        `json:"currentStatus"`
	DerivedStatus      domain.HousekeepingLabel `json:"derivedStatus"`
	ValidTransitions   []TransitionOption       `json:"validTransitions"`
	InvalidTransitions []TransitionOption       `json:"invalidTransitions"`
}

type ApplyTransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Force  bool   `json:"force"`
}

// BoardRoom is one row of the housekeeping board: a room with its derived
// per-day label and the booking currently claiming it, if any.
type BoardRoom struct {
	Room    *domain.Room             `json:"room"`
	Derived domain.HousekeepingLabel `json:"derived"`
	Booking *domain.Booking          `json:"booking,omitempty"`
}

type Board struct {
	Date  string      `json:"date"`
	Rooms []BoardRoom `json:"rooms"`
}
