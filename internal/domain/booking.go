package domain

import "time"

type BookingStatus string

const (
	BookingBooked     BookingStatus = "Booked"
	BookingCheckedIn  BookingStatus = "Checked-In"
	BookingCheckedOut BookingStatus = "Checked-Out"
	BookingCancelled  BookingStatus = "Cancelled"
)

// ActiveBookingStatuses are the statuses that occupy a room for the purposes
// of overlap checking and room-status protection.
var ActiveBookingStatuses = []BookingStatus{BookingBooked, BookingCheckedIn}

func (s BookingStatus) Active() bool {
	return s == BookingBooked || s == BookingCheckedIn
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// Booking is a stay reservation for one room over a half-open date range
// [CheckInDate, CheckOutDate). Bookings are never deleted; cancellation is a
// status transition.
type Booking struct {
	ID             int64         `json:"booking_id"`
	GuestID        int64         `json:"guest_id" validate:"required"`
	RoomID         int64         `json:"room_id" validate:"required"`
	CheckInDate    time.Time     `json:"check_in_date" validate:"required"`
	CheckOutDate   time.Time     `json:"check_out_date" validate:"required"`
	Status         BookingStatus `json:"status"`
	BookedRate     float64       `json:"booked_rate" validate:"required,gt=0"`
	TaxRatePercent float64       `json:"tax_rate_percent"`
	AdvancePayment float64       `json:"advance_payment"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Guest *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// Nights is the stay length under half-open semantics.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// CoversDate reports whether day falls inside [CheckInDate, CheckOutDate).
func (b *Booking) CoversDate(day time.Time) bool {
	return !day.Before(b.CheckInDate) && day.Before(b.CheckOutDate)
}
