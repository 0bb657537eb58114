package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
	RoomReserved    RoomStatus = "Reserved"
)

// AllRoomStatuses in display order, used when enumerating transitions.
var AllRoomStatuses = []RoomStatus{RoomAvailable, RoomReserved, RoomOccupied, RoomMaintenance}

// HousekeepingLabel is the derived per-day display status of a room. It is
// never persisted; it is recomputed on read from the room status, today's
// date and the bookings touching the room.
type HousekeepingLabel string

const (
	LabelArrival   HousekeepingLabel = "Arrival"
	LabelStayover  HousekeepingLabel = "Stayover"
	LabelDueOut    HousekeepingLabel = "Due Out"
	LabelDirty     HousekeepingLabel = "Dirty"
	LabelAvailable HousekeepingLabel = "Available"
	LabelOOO       HousekeepingLabel = "OOO"
)

// Room is a physical room. Status is the only persisted, explicitly mutated
// state field; Occupied and Reserved are set exclusively by the booking
// lifecycle, never by a manual transition.
type Room struct {
	ID         int64      `json:"room_id"`
	RoomNumber string     `json:"room_number" validate:"required"`
	RoomTypeID int64      `json:"room_type_id"`
	BranchID   int64      `json:"branch_id"`
	Status     RoomStatus `json:"status"`
	Retired    bool       `json:"retired,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
	Branch   *Branch   `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
}

type RoomType struct {
	ID        int64   `json:"room_type_id"`
	Name      string  `json:"name" validate:"required"`
	Capacity  int     `json:"capacity" validate:"gt=0"`
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`
}

type Branch struct {
	ID         int64  `json:"branch_id"`
	BranchName string `json:"branch_name" validate:"required"`
}
