package domain

import "time"

// RoomStatusAudit is the permanent record written whenever a room status
// transition is forced past the rules. Rows are append-only.
type RoomStatusAudit struct {
	ID        int64      `json:"id"`
	RoomID    int64      `json:"room_id"`
	ActorID   int64      `json:"actor_id"`
	ActorRole Role       `json:"actor_role"`
	OldStatus RoomStatus `json:"old_status"`
	NewStatus RoomStatus `json:"new_status"`
	Forced    bool       `json:"forced"`
	Reason    string     `json:"reason,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
