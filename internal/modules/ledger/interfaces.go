package ledger

import (
	"context"

	"hoteldesk/internal/domain"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByReference(ctx context.Context, bookingID int64, reference string) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	CreateAdjustment(ctx context.Context, a *domain.PaymentAdjustment) error
	ListAdjustments(ctx context.Context, bookingID int64) ([]domain.PaymentAdjustment, error)
	Totals(ctx context.Context, bookingID int64) (*domain.LedgerTotals, error)
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
