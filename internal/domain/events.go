package domain

import "time"

// Event names pushed to external collaborators (audit log, dashboards).
// This core makes state changes observable; persisting them is the
// collaborator's job.
const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
	EventPaymentRecorded      = "payment_recorded"
	EventAdjustmentRecorded   = "adjustment_recorded"
	EventRoomStatusChanged    = "room_status_changed"
	EventRoomStatusForced     = "room_status_forced"
)

// Event is a fact about a committed state change.
type Event struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id,omitempty"`
	RoomID     int64     `json:"room_id,omitempty"`
	ActorID    int64     `json:"actor_id,omitempty"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventSink receives events after the corresponding transaction commits.
// Implementations must not block request handling.
type EventSink interface {
	Publish(e Event)
}
