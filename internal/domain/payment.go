package domain

import (
	"strings"
	"time"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodCard   PaymentMethod = "Card"
	MethodOnline PaymentMethod = "Online"
)

// NormalizePaymentMethod maps caller input like "cash"/"CARD" onto the stored
// enum, returning false for anything unrecognized.
func NormalizePaymentMethod(input string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "cash":
		return MethodCash, true
	case "card":
		return MethodCard, true
	case "online":
		return MethodOnline, true
	}
	return "", false
}

// Payment is an immutable ledger entry. Amount is always positive;
// corrections are modeled as adjustments, never as updates or deletes.
// (BookingID, PaymentReference) is unique when the reference is set and acts
// as the idempotency key for retried submissions.
type Payment struct {
	ID               int64         `json:"payment_id"`
	BookingID        int64         `json:"booking_id" validate:"required"`
	Amount           float64       `json:"amount" validate:"required,gt=0"`
	Method           PaymentMethod `json:"method" validate:"required"`
	PaidAt           time.Time     `json:"paid_at"`
	PaymentReference *string       `json:"payment_reference,omitempty"`
}

type AdjustmentType string

const (
	AdjustmentRefund     AdjustmentType = "refund"
	AdjustmentChargeback AdjustmentType = "chargeback"
	AdjustmentManual     AdjustmentType = "manual_adjustment"
)

// Negative reports whether this adjustment type reduces the ledger.
func (t AdjustmentType) Negative() bool {
	return t == AdjustmentRefund || t == AdjustmentChargeback
}

// PaymentAdjustment is an immutable correction entry. Amount is stored as a
// positive magnitude; the effective sign is implied by Type. The public API
// accepts signed amounts, so the magnitude+type encoding stays a storage
// detail.
type PaymentAdjustment struct {
	ID        int64          `json:"adjustment_id"`
	BookingID int64          `json:"booking_id" validate:"required"`
	Amount    float64        `json:"amount" validate:"required,gt=0"`
	Type      AdjustmentType `json:"type"`
	Reason    *string        `json:"reason,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// EffectiveAmount is the signed contribution of this adjustment to the
// ledger total.
func (a *PaymentAdjustment) EffectiveAmount() float64 {
	if a.Type.Negative() {
		return -a.Amount
	}
	return a.Amount
}

// LedgerTotals are always recomputed from the payment and adjustment rows;
// no running balance is stored anywhere.
type LedgerTotals struct {
	BookingID   int64   `json:"booking_id"`
	TotalPaid   float64 `json:"total_paid"`
	TotalAdjust float64 `json:"total_adjust"`
	NetTotal    float64 `json:"net_total"`
}
