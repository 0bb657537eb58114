package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hoteldesk/internal/config"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

// Mock repositories
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepo) CreateWithAdvance(ctx context.Context, b *domain.Booking, p *domain.Payment) error {
	args := m.Called(ctx, b, p)
	if args.Error(0) == nil {
		b.ID = 999
		p.ID = 501
		p.BookingID = b.ID
	}
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindConflicts(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeBookingID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ActiveBookingForRoomOn(ctx context.Context, roomID int64, day time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, roomID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *MockBookingRepo) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepo) UpdateStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

type MockGuestReader struct {
	mock.Mock
}

func (m *MockGuestReader) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type recordingSink struct {
	events []domain.Event
}

func (r *recordingSink) Publish(e domain.Event) {
	r.events = append(r.events, e)
}

var testToday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		MinAdvancePercent: 10,
		PrivilegedRoles:   map[domain.Role]bool{domain.RoleAdmin: true, domain.RoleManager: true},
	}
}

func newTestService(bookings *MockBookingRepo, rooms *MockRoomRepo, guests *MockGuestReader, sink domain.EventSink, cfg *config.RuntimeConfig) *Service {
	svc := NewService(bookings, rooms, guests, sink, cfg)
	svc.now = func() time.Time { return testToday.Add(14 * time.Hour) }
	return svc
}

func availableRoom(id int64) *domain.Room {
	return &domain.Room{ID: id, Status: domain.RoomAvailable}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		GuestID:        10,
		RoomID:         7,
		CheckInDate:    "2025-07-01",
		CheckOutDate:   "2025-07-04",
		BookedRate:     100,
		AdvancePayment: 30, // 10% of 3 nights * 100 = 30
		PaymentMethod:  "cash",
	}
}

func TestCreateBooking_WithAdvance(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	sink := &recordingSink{}
	svc := newTestService(bookings, rooms, guests, sink, testConfig())

	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	guests.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{}, nil)
	bookings.On("CreateWithAdvance", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CreateBooking(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(999), result.Booking.ID)
	assert.Equal(t, domain.BookingBooked, result.Booking.Status)
	assert.NotNil(t, result.Payment)
	assert.Equal(t, domain.MethodCash, result.Payment.Method)
	assert.Len(t, sink.events, 1)
	assert.Equal(t, domain.EventBookingCreated, sink.events[0].Type)

	// creation never touches the persisted room status
	rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_ZeroAdvanceAllowed(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	svc := newTestService(bookings, rooms, guests, nil, testConfig())

	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	guests.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{}, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	// the minimum advance rule only binds an advance that is actually paid
	req := validRequest()
	req.AdvancePayment = 0
	req.PaymentMethod = ""

	result, err := svc.CreateBooking(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(999), result.Booking.ID)
	assert.Nil(t, result.Payment)
	bookings.AssertNotCalled(t, "CreateWithAdvance", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_AdvanceBelowMinimum(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	svc := newTestService(bookings, rooms, guests, nil, testConfig())

	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	guests.On("Exists", mock.Anything, int64(10)).Return(true, nil)

	req := validRequest()
	req.AdvancePayment = 29.99

	_, err := svc.CreateBooking(context.Background(), req)

	var advanceErr *MinAdvanceError
	assert.ErrorAs(t, err, &advanceErr)
	assert.Equal(t, 30.0, advanceErr.Required)
	bookings.AssertNotCalled(t, "CreateWithAdvance", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_OverlapPreCheck(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	svc := newTestService(bookings, rooms, guests, nil, testConfig())

	existing := domain.Booking{ID: 42, RoomID: 7, Status: domain.BookingBooked}
	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	guests.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{existing}, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())

	var overlapErr *OverlapError
	assert.ErrorAs(t, err, &overlapErr)
	assert.Len(t, overlapErr.Conflicts, 1)
	assert.Equal(t, int64(42), overlapErr.Conflicts[0].ID)
	bookings.AssertNotCalled(t, "CreateWithAdvance", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_OverlapRaceOnInsert(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	svc := newTestService(bookings, rooms, guests, nil, testConfig())

	winner := domain.Booking{ID: 43, RoomID: 7, Status: domain.BookingBooked}
	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	guests.On("Exists", mock.Anything, int64(10)).Return(true, nil)
	bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{}, nil).Once()
	bookings.On("CreateWithAdvance", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23P01", ConstraintName: "excl_booking_no_overlap"})
	bookings.On("FindConflicts", mock.Anything, int64(7), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.Booking{winner}, nil).Once()

	_, err := svc.CreateBooking(context.Background(), validRequest())

	var overlapErr *OverlapError
	assert.ErrorAs(t, err, &overlapErr)
	assert.Len(t, overlapErr.Conflicts, 1)
	assert.Equal(t, int64(43), overlapErr.Conflicts[0].ID)
}

func TestCreateBooking_Validation(t *testing.T) {
	svc := newTestService(new(MockBookingRepo), new(MockRoomRepo), new(MockGuestReader), nil, testConfig())

	tests := []struct {
		name    string
		mutate  func(*CreateBookingRequest)
		wantErr error
	}{
		{"bad check-in format", func(r *CreateBookingRequest) { r.CheckInDate = "01-07-2025" }, ErrValidation},
		{"bad checkout format", func(r *CreateBookingRequest) { r.CheckOutDate = "July 4" }, ErrValidation},
		{"checkout before check-in", func(r *CreateBookingRequest) { r.CheckOutDate = "2025-06-30" }, ErrValidation},
		{"zero-night stay", func(r *CreateBookingRequest) { r.CheckOutDate = "2025-07-01" }, ErrValidation},
		{"zero rate", func(r *CreateBookingRequest) { r.BookedRate = 0 }, ErrValidation},
		{"negative advance", func(r *CreateBookingRequest) { r.AdvancePayment = -5 }, ErrValidation},
		{"bad payment method", func(r *CreateBookingRequest) { r.PaymentMethod = "barter" }, ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.CreateBooking(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateBooking_UnknownRoomAndGuest(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	svc := newTestService(bookings, rooms, guests, nil, testConfig())

	rooms.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound).Once()
	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnknownRoom)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	guests.On("Exists", mock.Anything, int64(10)).Return(false, nil)
	_, err = svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUnknownGuest)
}

func TestCreateBooking_RoomUnderMaintenance(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	guests := new(MockGuestReader)
	svc := newTestService(bookings, rooms, guests, nil, testConfig())

	rooms.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Room{ID: 7, Status: domain.RoomMaintenance}, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestUpdateStatus_CheckInMarksRoomOccupied(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	sink := &recordingSink{}
	svc := newTestService(bookings, rooms, new(MockGuestReader), sink, testConfig())

	b := &domain.Booking{ID: 1, RoomID: 7, Status: domain.BookingBooked}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCheckedIn).Return(nil)
	rooms.On("UpdateStatus", mock.Anything, int64(7), domain.RoomOccupied).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.BookingCheckedIn, domain.Actor{UserID: 2, Role: domain.RoleReceptionist})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, updated.Status)
	rooms.AssertCalled(t, "UpdateStatus", mock.Anything, int64(7), domain.RoomOccupied)
	assert.Len(t, sink.events, 1)
	assert.Equal(t, domain.EventBookingStatusChanged, sink.events[0].Type)
}

func TestUpdateStatus_CheckoutReleasesRoom(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	svc := newTestService(bookings, rooms, new(MockGuestReader), nil, testConfig())

	b := &domain.Booking{ID: 1, RoomID: 7, Status: domain.BookingCheckedIn}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCheckedOut).Return(nil)
	bookings.On("ActiveBookingForRoomOn", mock.Anything, int64(7), testToday).Return(nil, nil)
	rooms.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Room{ID: 7, Status: domain.RoomOccupied}, nil)
	rooms.On("UpdateStatus", mock.Anything, int64(7), domain.RoomAvailable).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.BookingCheckedOut, domain.Actor{UserID: 2, Role: domain.RoleReceptionist})

	assert.NoError(t, err)
	rooms.AssertCalled(t, "UpdateStatus", mock.Anything, int64(7), domain.RoomAvailable)
}

func TestUpdateStatus_CheckoutPreservesMaintenance(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	svc := newTestService(bookings, rooms, new(MockGuestReader), nil, testConfig())

	// room was forced to Maintenance mid-stay; checkout must not revive it
	b := &domain.Booking{ID: 1, RoomID: 7, Status: domain.BookingCheckedIn}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCheckedOut).Return(nil)
	bookings.On("ActiveBookingForRoomOn", mock.Anything, int64(7), testToday).Return(nil, nil)
	rooms.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.Room{ID: 7, Status: domain.RoomMaintenance}, nil)

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.BookingCheckedOut, domain.Actor{UserID: 2, Role: domain.RoleReceptionist})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, updated.Status)
	rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_CheckoutKeepsRoomWhenReclaimed(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	svc := newTestService(bookings, rooms, new(MockGuestReader), nil, testConfig())

	b := &domain.Booking{ID: 1, RoomID: 7, Status: domain.BookingCheckedIn}
	next := &domain.Booking{ID: 2, RoomID: 7, Status: domain.BookingBooked}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCheckedOut).Return(nil)
	bookings.On("ActiveBookingForRoomOn", mock.Anything, int64(7), testToday).Return(next, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.BookingCheckedOut, domain.Actor{UserID: 2, Role: domain.RoleReceptionist})

	assert.NoError(t, err)
	rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{"skip check-in", domain.BookingBooked, domain.BookingCheckedOut},
		{"revive cancelled", domain.BookingCancelled, domain.BookingCheckedIn},
		{"reopen checked out", domain.BookingCheckedOut, domain.BookingCheckedIn},
		{"cancel after checkout", domain.BookingCheckedOut, domain.BookingCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepo)
			rooms := new(MockRoomRepo)
			svc := newTestService(bookings, rooms, new(MockGuestReader), nil, testConfig())

			bookings.On("GetByID", mock.Anything, int64(1)).
				Return(&domain.Booking{ID: 1, RoomID: 7, Status: tt.from}, nil)

			_, err := svc.UpdateStatus(context.Background(), 1, tt.to, domain.Actor{UserID: 2, Role: domain.RoleManager})

			var statusErr *StatusError
			assert.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.from, statusErr.From)
			bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateStatus_CancelFromBooked(t *testing.T) {
	bookings := new(MockBookingRepo)
	rooms := new(MockRoomRepo)
	svc := newTestService(bookings, rooms, new(MockGuestReader), nil, testConfig())

	b := &domain.Booking{ID: 1, RoomID: 7, Status: domain.BookingBooked}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCancelled).Return(nil)
	bookings.On("ActiveBookingForRoomOn", mock.Anything, int64(7), testToday).Return(nil, nil)
	rooms.On("GetByID", mock.Anything, int64(7)).Return(availableRoom(7), nil)
	rooms.On("UpdateStatus", mock.Anything, int64(7), domain.RoomAvailable).Return(nil)

	updated, err := svc.UpdateStatus(context.Background(), 1, domain.BookingCancelled, domain.Actor{UserID: 2, Role: domain.RoleManager})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, updated.Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	bookings := new(MockBookingRepo)
	svc := newTestService(bookings, new(MockRoomRepo), new(MockGuestReader), nil, testConfig())

	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.UpdateStatus(context.Background(), 404, domain.BookingCancelled, domain.Actor{UserID: 2, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
