package ledger

import (
	"time"

	"hoteldesk/internal/domain"
)

type RecordPaymentRequest struct {
	BookingID        int64      `json:"booking_id" binding:"required"`
	Amount           float64    `json:"amount" binding:"required"`
	Method           string     `json:"method" binding:"required"`
	PaidAt           *time.Time `json:"paid_at"`
	PaymentReference string     `json:"payment_reference"`
}

type RecordAdjustmentRequest struct {
	BookingID int64   `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Reason    string  `json:"reason"`
	Type      string  `json:"type"`
}

// PaymentResult carries the persisted (or pre-existing, when idempotent)
// payment together with fresh ledger totals.
type PaymentResult struct {
	Payment    *domain.Payment      `json:"payment"`
	Totals     *domain.LedgerTotals `json:"totals"`
	Idempotent bool                 `json:"idempotent,omitempty"`
}

type AdjustmentResult struct {
	Adjustment *domain.PaymentAdjustment `json:"adjustment"`
	Totals     *domain.LedgerTotals      `json:"totals"`
}

// LedgerView is the full append-only ledger of one booking.
type LedgerView struct {
	BookingID   int64                      `json:"booking_id"`
	Totals      *domain.LedgerTotals       `json:"totals"`
	Payments    []domain.Payment           `json:"payments"`
	Adjustments []domain.PaymentAdjustment `json:"adjustments"`
}
