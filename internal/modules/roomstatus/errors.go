package roomstatus

import (
	"errors"
	"fmt"

	"hoteldesk/internal/domain"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrRoomNotFound = errors.New("room not found")
	ErrForbidden    = errors.New("actor may not force a room status override")
)

// TransitionError explains why a status change was blocked, with enough
// detail for a UI to tell the operator what to do instead.
type TransitionError struct {
	From       domain.RoomStatus
	To         domain.RoomStatus
	Reason     string
	Suggestion string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal room status transition %s -> %s: %s", e.From, e.To, e.Reason)
}
