package booking

import "hoteldesk/internal/domain"

// CreateBookingRequest carries date-only strings (YYYY-MM-DD); the range is
// half-open, checkout day excluded.
type CreateBookingRequest struct {
	GuestID          int64   `json:"guest_id" binding:"required"`
	RoomID           int64   `json:"room_id" binding:"required"`
	CheckInDate      string  `json:"check_in_date" binding:"required"`
	CheckOutDate     string  `json:"check_out_date" binding:"required"`
	BookedRate       float64 `json:"booked_rate"`
	TaxRatePercent   float64 `json:"tax_rate_percent"`
	AdvancePayment   float64 `json:"advance_payment"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference string  `json:"payment_reference"`
}

// CreateBookingResult is the booking plus the advance payment row written in
// the same transaction, when one was taken.
type CreateBookingResult struct {
	Booking *domain.Booking `json:"booking"`
	Payment *domain.Payment `json:"payment,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListResult struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
