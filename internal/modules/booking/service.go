package booking

import (
	"context"
	"math"
	"strings"
	"time"

	"hoteldesk/internal/config"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type Service struct {
	bookings bookingRepo
	rooms    roomRepo
	guests   guestReader
	events   domain.EventSink
	cfg      *config.RuntimeConfig
	now      func() time.Time
}

func NewService(bookings bookingRepo, rooms roomRepo, guests guestReader, events domain.EventSink, cfg *config.RuntimeConfig) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		guests:   guests,
		events:   events,
		cfg:      cfg,
		now:      time.Now,
	}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// CreateBooking validates and persists a new stay. The date range is
// half-open, so back-to-back bookings sharing a checkout/check-in day do not
// conflict. When an advance payment is supplied the booking and payment rows
// commit in one transaction. Creating a booking never touches the persisted
// room status; the room is claimed at check-in.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error) {
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		return nil, ErrValidation
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		return nil, ErrValidation
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrValidation
	}
	if req.BookedRate <= 0 || math.IsNaN(req.BookedRate) || math.IsInf(req.BookedRate, 0) {
		return nil, ErrValidation
	}
	if req.AdvancePayment < 0 || math.IsNaN(req.AdvancePayment) {
		return nil, ErrValidation
	}

	var method domain.PaymentMethod
	if req.AdvancePayment > 0 {
		var ok bool
		method, ok = domain.NormalizePaymentMethod(req.PaymentMethod)
		if !ok {
			return nil, ErrInvalidMethod
		}
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownRoom
		}
		return nil, err
	}
	if room.Retired || room.Status == domain.RoomMaintenance {
		return nil, ErrRoomUnavailable
	}

	exists, err := s.guests.Exists(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownGuest
	}

	b := &domain.Booking{
		GuestID:        req.GuestID,
		RoomID:         req.RoomID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		Status:         domain.BookingBooked,
		BookedRate:     req.BookedRate,
		TaxRatePercent: req.TaxRatePercent,
		AdvancePayment: req.AdvancePayment,
	}

	// the minimum applies only when an advance is actually taken
	required := s.cfg.MinimumAdvance(b.Nights(), req.BookedRate)
	if req.AdvancePayment > 0 && req.AdvancePayment < required {
		return nil, &MinAdvanceError{Provided: req.AdvancePayment, Required: required}
	}

	conflicts, err := s.bookings.FindConflicts(ctx, req.RoomID, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &OverlapError{RoomID: req.RoomID, Conflicts: conflicts}
	}

	var payment *domain.Payment
	if req.AdvancePayment > 0 {
		payment = &domain.Payment{
			Amount: req.AdvancePayment,
			Method: method,
			PaidAt: s.now().UTC(),
		}
		if ref := strings.TrimSpace(req.PaymentReference); ref != "" {
			payment.PaymentReference = &ref
		}
		err = s.bookings.CreateWithAdvance(ctx, b, payment)
	} else {
		err = s.bookings.Create(ctx, b)
	}
	if err != nil {
		switch {
		case repository.IsOverlapViolation(err):
			// lost the race against a concurrent insert; report the winner
			rows, qerr := s.bookings.FindConflicts(ctx, req.RoomID, checkIn, checkOut, 0)
			if qerr != nil {
				rows = nil
			}
			return nil, &OverlapError{RoomID: req.RoomID, Conflicts: rows}
		case repository.IsCheckViolation(err):
			return nil, &MinAdvanceError{Provided: req.AdvancePayment, Required: required}
		case repository.IsForeignKeyViolation(err):
			return nil, ErrValidation
		}
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(domain.Event{
			Type:      domain.EventBookingCreated,
			BookingID: b.ID,
			RoomID:    b.RoomID,
			Payload:   b,
		})
	}

	return &CreateBookingResult{Booking: b, Payment: payment}, nil
}

// legal booking lifecycle moves
var bookingTransitions = map[domain.BookingStatus]map[domain.BookingStatus]bool{
	domain.BookingBooked: {
		domain.BookingCheckedIn: true,
		domain.BookingCancelled: true,
	},
	domain.BookingCheckedIn: {
		domain.BookingCheckedOut: true,
		domain.BookingCancelled:  true,
	},
}

// UpdateStatus advances the booking lifecycle and keeps the room status in
// step: check-in marks the room Occupied, checkout and cancellation release
// it back to Available unless another active booking claims the room today
// or the room was moved to Maintenance during the stay.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, newStatus domain.BookingStatus, actor domain.Actor) (*domain.Booking, error) {
	switch newStatus {
	case domain.BookingBooked, domain.BookingCheckedIn, domain.BookingCheckedOut, domain.BookingCancelled:
	default:
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.Status == newStatus {
		return b, nil
	}
	if !bookingTransitions[b.Status][newStatus] {
		return nil, &StatusError{From: b.Status, To: newStatus}
	}

	oldStatus := b.Status
	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Status = newStatus

	if err := s.syncRoomStatus(ctx, b); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(domain.Event{
			Type:      domain.EventBookingStatusChanged,
			BookingID: b.ID,
			RoomID:    b.RoomID,
			ActorID:   actor.UserID,
			Payload: map[string]any{
				"old_status": oldStatus,
				"new_status": newStatus,
			},
		})
	}

	return b, nil
}

func (s *Service) syncRoomStatus(ctx context.Context, b *domain.Booking) error {
	switch b.Status {
	case domain.BookingCheckedIn:
		return s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomOccupied)
	case domain.BookingCheckedOut, domain.BookingCancelled:
		today := s.today()
		active, err := s.bookings.ActiveBookingForRoomOn(ctx, b.RoomID, today)
		if err != nil {
			return err
		}
		if active != nil {
			// another stay claims the room today; leave its status alone
			return nil
		}
		room, err := s.rooms.GetByID(ctx, b.RoomID)
		if err != nil {
			return err
		}
		if room.Status == domain.RoomMaintenance {
			// emergency maintenance applied mid-stay survives checkout
			return nil
		}
		return s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomAvailable)
	}
	return nil
}

func (s *Service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, f repository.BookingFilter) (*ListResult, error) {
	rows, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return nil, err
	}
	limit := f.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return &ListResult{Bookings: rows, Total: total, Limit: limit, Offset: f.Offset}, nil
}
