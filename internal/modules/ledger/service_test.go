package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/database"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type testEnv struct {
	svc      *Service
	bookings *repository.BookingRepository
	sink     *recordingSink
}

type recordingSink struct {
	events []domain.Event
}

func (r *recordingSink) Publish(e domain.Event) {
	r.events = append(r.events, e)
}

func setupTestService(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)
	sink := &recordingSink{}
	return &testEnv{
		svc:      NewService(payments, bookings, sink),
		bookings: bookings,
		sink:     sink,
	}
}

func seedBooking(t *testing.T, env *testEnv) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		GuestID:      1,
		RoomID:       1,
		CheckInDate:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		Status:       domain.BookingBooked,
		BookedRate:   100,
	}
	require.NoError(t, env.bookings.Create(context.Background(), b))
	return b
}

func TestRecordPayment_AppendsAndRecomputesTotals(t *testing.T) {
	env := setupTestService(t)
	b := seedBooking(t, env)
	ctx := context.Background()

	first, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{
		BookingID: b.ID, Amount: 100, Method: "cash",
	})
	require.NoError(t, err)
	assert.False(t, first.Idempotent)
	assert.Equal(t, 100.0, first.Totals.TotalPaid)

	second, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{
		BookingID: b.ID, Amount: 50.5, Method: "Card",
	})
	require.NoError(t, err)
	assert.Equal(t, 150.5, second.Totals.TotalPaid)
	assert.Equal(t, 150.5, second.Totals.NetTotal)

	assert.Len(t, env.sink.events, 2)
	assert.Equal(t, domain.EventPaymentRecorded, env.sink.events[0].Type)
}

func TestRecordPayment_IdempotentOnReference(t *testing.T) {
	env := setupTestService(t)
	b := seedBooking(t, env)
	ctx := context.Background()

	first, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{
		BookingID: b.ID, Amount: 200, Method: "online", PaymentReference: "gw-txn-777",
	})
	require.NoError(t, err)
	assert.False(t, first.Idempotent)

	retry, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{
		BookingID: b.ID, Amount: 200, Method: "online", PaymentReference: "gw-txn-777",
	})
	require.NoError(t, err)
	assert.True(t, retry.Idempotent)
	assert.Equal(t, first.Payment.ID, retry.Payment.ID)
	assert.Equal(t, 200.0, retry.Totals.TotalPaid)

	// only the first submission produces an event
	assert.Len(t, env.sink.events, 1)
}

func TestRecordPayment_SameReferenceDifferentBookings(t *testing.T) {
	env := setupTestService(t)
	b1 := seedBooking(t, env)
	b2 := seedBooking(t, env)
	ctx := context.Background()

	p1, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{
		BookingID: b1.ID, Amount: 80, Method: "card", PaymentReference: "shared-ref",
	})
	require.NoError(t, err)

	p2, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{
		BookingID: b2.ID, Amount: 90, Method: "card", PaymentReference: "shared-ref",
	})
	require.NoError(t, err)

	// the idempotency key is scoped per booking
	assert.False(t, p2.Idempotent)
	assert.NotEqual(t, p1.Payment.ID, p2.Payment.ID)
}

func TestRecordPayment_Rejections(t *testing.T) {
	env := setupTestService(t)
	b := seedBooking(t, env)
	ctx := context.Background()

	_, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: b.ID, Amount: 0, Method: "cash"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: b.ID, Amount: -10, Method: "cash"})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: b.ID, Amount: 10, Method: "cheque"})
	assert.ErrorIs(t, err, ErrInvalidMethod)

	_, err = env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: 9999, Amount: 10, Method: "cash"})
	assert.ErrorIs(t, err, ErrUnknownBooking)
}

func TestRecordAdjustment_SignedAmountNormalization(t *testing.T) {
	env := setupTestService(t)
	b := seedBooking(t, env)
	ctx := context.Background()

	_, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: b.ID, Amount: 300, Method: "cash"})
	require.NoError(t, err)

	// negative amount with no type becomes a refund stored as magnitude
	refund, err := env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{
		BookingID: b.ID, Amount: -50, Reason: "night comped",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdjustmentRefund, refund.Adjustment.Type)
	assert.Equal(t, 50.0, refund.Adjustment.Amount)
	assert.Equal(t, -50.0, refund.Totals.TotalAdjust)
	assert.Equal(t, 250.0, refund.Totals.NetTotal)

	// positive amount with no type becomes a manual adjustment
	manual, err := env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{
		BookingID: b.ID, Amount: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdjustmentManual, manual.Adjustment.Type)
	assert.Equal(t, 270.0, manual.Totals.NetTotal)

	// explicit chargeback subtracts regardless of the positive input
	chargeback, err := env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{
		BookingID: b.ID, Amount: 100, Type: "chargeback",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AdjustmentChargeback, chargeback.Adjustment.Type)
	assert.Equal(t, 170.0, chargeback.Totals.NetTotal)
}

func TestRecordAdjustment_Rejections(t *testing.T) {
	env := setupTestService(t)
	b := seedBooking(t, env)
	ctx := context.Background()

	_, err := env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{BookingID: b.ID, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{BookingID: b.ID, Amount: 10, Type: "rebate"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{BookingID: 9999, Amount: 10})
	assert.ErrorIs(t, err, ErrUnknownBooking)
}

func TestLedger_FullHistory(t *testing.T) {
	env := setupTestService(t)
	b := seedBooking(t, env)
	ctx := context.Background()

	_, err := env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: b.ID, Amount: 120, Method: "cash"})
	require.NoError(t, err)
	_, err = env.svc.RecordPayment(ctx, RecordPaymentRequest{BookingID: b.ID, Amount: 80, Method: "card"})
	require.NoError(t, err)
	_, err = env.svc.RecordAdjustment(ctx, RecordAdjustmentRequest{BookingID: b.ID, Amount: -30})
	require.NoError(t, err)

	view, err := env.svc.Ledger(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, view.Payments, 2)
	assert.Len(t, view.Adjustments, 1)
	assert.Equal(t, 200.0, view.Totals.TotalPaid)
	assert.Equal(t, -30.0, view.Totals.TotalAdjust)
	assert.Equal(t, 170.0, view.Totals.NetTotal)
}

func TestLedger_UnknownBooking(t *testing.T) {
	env := setupTestService(t)

	_, err := env.svc.Ledger(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnknownBooking)
}
