package repository

import (
	"context"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		BookingID:        p.BookingID,
		Amount:           p.Amount,
		Method:           string(p.Method),
		PaidAt:           p.PaidAt,
		PaymentReference: p.PaymentReference,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

// GetByReference looks up the payment carrying the idempotency key
// (booking_id, payment_reference).
func (r *PaymentRepository) GetByReference(ctx context.Context, bookingID int64, reference string) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ? AND payment_reference = ?", bookingID, reference).
		First(&m)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at DESC, payment_id DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

func (r *PaymentRepository) CreateAdjustment(ctx context.Context, a *domain.PaymentAdjustment) error {
	m := adjustmentModel{
		BookingID: a.BookingID,
		Amount:    a.Amount,
		Type:      string(a.Type),
		Reason:    a.Reason,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAdjustment(m)
	return nil
}

func (r *PaymentRepository) ListAdjustments(ctx context.Context, bookingID int64) ([]domain.PaymentAdjustment, error) {
	var rows []adjustmentModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC, adjustment_id DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.PaymentAdjustment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAdjustment(m))
	}
	return out, nil
}

// Totals recomputes the ledger from source rows on every call. There is no
// cached balance to drift out of sync with the append-only ledger.
func (r *PaymentRepository) Totals(ctx context.Context, bookingID int64) (*domain.LedgerTotals, error) {
	var totalPaid float64
	tx := r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPaid)
	if tx.Error != nil {
		return nil, tx.Error
	}

	var totalAdjust float64
	tx = r.db.WithContext(ctx).Model(&adjustmentModel{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(CASE WHEN type IN ('refund', 'chargeback') THEN -amount ELSE amount END), 0)").
		Scan(&totalAdjust)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &domain.LedgerTotals{
		BookingID:   bookingID,
		TotalPaid:   totalPaid,
		TotalAdjust: totalAdjust,
		NetTotal:    totalPaid + totalAdjust,
	}, nil
}
