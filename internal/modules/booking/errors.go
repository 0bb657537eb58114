package booking

import (
	"errors"
	"fmt"

	"hoteldesk/internal/domain"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUnknownGuest    = errors.New("guest not found")
	ErrUnknownRoom     = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomUnavailable = errors.New("room is not bookable")
	ErrInvalidMethod   = errors.New("invalid payment method")
)

// OverlapError rejects a booking whose date range intersects an existing
// active booking on the same room. Conflicts carries the offending rows so
// the caller can show them.
type OverlapError struct {
	RoomID    int64
	Conflicts []domain.Booking
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("room %d already booked for an overlapping date range", e.RoomID)
}

// MinAdvanceError rejects a booking whose advance payment is below the
// configured fraction of the stay total.
type MinAdvanceError struct {
	Provided float64
	Required float64
}

func (e *MinAdvanceError) Error() string {
	return fmt.Sprintf("advance payment %.2f below minimum %.2f", e.Provided, e.Required)
}

// StatusError rejects an illegal booking lifecycle move.
type StatusError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("illegal booking status transition %s -> %s", e.From, e.To)
}
