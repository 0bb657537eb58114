package ledger

import (
	"context"
	"math"
	"strings"
	"time"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type Service struct {
	payments paymentRepo
	bookings bookingReader
	events   domain.EventSink
}

func NewService(payments paymentRepo, bookings bookingReader, events domain.EventSink) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		events:   events,
	}
}

// RecordPayment appends a payment to the booking's ledger. When a payment
// reference is supplied the call is idempotent: a retry with the same
// (booking_id, payment_reference) returns the already persisted row instead
// of a duplicate or a conflict. A race between two identical requests is
// resolved the same way: the loser of the unique-index insert re-queries
// and returns the winner's row.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResult, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, ErrInvalidAmount
	}
	method, ok := domain.NormalizePaymentMethod(req.Method)
	if !ok {
		return nil, ErrInvalidMethod
	}

	if _, err := s.bookings.GetByID(ctx, req.BookingID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownBooking
		}
		return nil, err
	}

	ref := strings.TrimSpace(req.PaymentReference)
	if ref != "" {
		existing, err := s.payments.GetByReference(ctx, req.BookingID, ref)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.idempotentResult(ctx, existing)
		}
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	p := &domain.Payment{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    method,
		PaidAt:    paidAt,
	}
	if ref != "" {
		p.PaymentReference = &ref
	}

	if err := s.payments.Create(ctx, p); err != nil {
		switch {
		case repository.IsUniqueViolation(err, "uq_booking_payment_ref") && ref != "":
			// concurrent identical request won the insert; return its row
			winner, qerr := s.payments.GetByReference(ctx, req.BookingID, ref)
			if qerr != nil {
				return nil, qerr
			}
			if winner != nil {
				return s.idempotentResult(ctx, winner)
			}
			return nil, err
		case repository.IsForeignKeyViolation(err):
			return nil, ErrUnknownBooking
		}
		return nil, err
	}

	totals, err := s.payments.Totals(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(domain.Event{
			Type:      domain.EventPaymentRecorded,
			BookingID: p.BookingID,
			Payload:   p,
		})
	}

	return &PaymentResult{Payment: p, Totals: totals}, nil
}

func (s *Service) idempotentResult(ctx context.Context, p *domain.Payment) (*PaymentResult, error) {
	totals, err := s.payments.Totals(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	return &PaymentResult{Payment: p, Totals: totals, Idempotent: true}, nil
}

// RecordAdjustment appends a correction entry. The API amount is signed;
// storage keeps the magnitude plus a type that implies the sign. When the
// caller omits the type it is inferred: negative amounts become refunds,
// positive ones manual adjustments.
func (s *Service) RecordAdjustment(ctx context.Context, req RecordAdjustmentRequest) (*AdjustmentResult, error) {
	if req.Amount == 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, ErrInvalidAmount
	}

	adjType := domain.AdjustmentType(strings.TrimSpace(req.Type))
	switch adjType {
	case "":
		if req.Amount < 0 {
			adjType = domain.AdjustmentRefund
		} else {
			adjType = domain.AdjustmentManual
		}
	case domain.AdjustmentRefund, domain.AdjustmentChargeback, domain.AdjustmentManual:
	default:
		return nil, ErrValidation
	}

	if _, err := s.bookings.GetByID(ctx, req.BookingID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownBooking
		}
		return nil, err
	}

	a := &domain.PaymentAdjustment{
		BookingID: req.BookingID,
		Amount:    math.Abs(req.Amount),
		Type:      adjType,
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		a.Reason = &reason
	}

	if err := s.payments.CreateAdjustment(ctx, a); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUnknownBooking
		}
		return nil, err
	}

	totals, err := s.payments.Totals(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.Publish(domain.Event{
			Type:      domain.EventAdjustmentRecorded,
			BookingID: a.BookingID,
			Payload:   a,
		})
	}

	return &AdjustmentResult{Adjustment: a, Totals: totals}, nil
}

// Totals recomputes the booking's financial position from the source rows.
func (s *Service) Totals(ctx context.Context, bookingID int64) (*domain.LedgerTotals, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUnknownBooking
		}
		return nil, err
	}
	return s.payments.Totals(ctx, bookingID)
}

// Ledger returns the full payment and adjustment history with totals.
func (s *Service) Ledger(ctx context.Context, bookingID int64) (*LedgerView, error) {
	totals, err := s.Totals(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.payments.ListAdjustments(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &LedgerView{
		BookingID:   bookingID,
		Totals:      totals,
		Payments:    payments,
		Adjustments: adjustments,
	}, nil
}
