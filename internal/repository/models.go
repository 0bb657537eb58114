package repository

import (
	"time"

	"gorm.io/gorm"

	"hoteldesk/internal/database"
	"hoteldesk/internal/domain"
)

type roomModel struct {
	ID         int64     `gorm:"column:room_id;primaryKey"`
	RoomNumber string    `gorm:"column:room_number;not null;uniqueIndex"`
	RoomTypeID int64     `gorm:"column:room_type_id;index"`
	BranchID   int64     `gorm:"column:branch_id;index"`
	Status     string    `gorm:"column:status;not null;default:'Available'"`
	Retired    bool      `gorm:"column:retired;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

type roomTypeModel struct {
	ID        int64   `gorm:"column:room_type_id;primaryKey"`
	Name      string  `gorm:"column:name;not null"`
	Capacity  int     `gorm:"column:capacity;not null"`
	DailyRate float64 `gorm:"column:daily_rate;not null"`
}

func (roomTypeModel) TableName() string { return "room_types" }

type branchModel struct {
	ID         int64  `gorm:"column:branch_id;primaryKey"`
	BranchName string `gorm:"column:branch_name;not null"`
}

func (branchModel) TableName() string { return "branches" }

type guestModel struct {
	ID        int64     `gorm:"column:guest_id;primaryKey"`
	FullName  string    `gorm:"column:full_name;not null"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (guestModel) TableName() string { return "guests" }

type bookingModel struct {
	ID             int64     `gorm:"column:booking_id;primaryKey"`
	GuestID        int64     `gorm:"column:guest_id;not null;index"`
	RoomID         int64     `gorm:"column:room_id;not null;index"`
	CheckInDate    time.Time `gorm:"column:check_in_date;type:date;not null"`
	CheckOutDate   time.Time `gorm:"column:check_out_date;type:date;not null"`
	Status         string    `gorm:"column:status;not null;default:'Booked';index"`
	BookedRate     float64   `gorm:"column:booked_rate;not null"`
	TaxRatePercent float64   `gorm:"column:tax_rate_percent;not null;default:0"`
	AdvancePayment float64   `gorm:"column:advance_payment;not null;default:0"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	Guest *guestModel `gorm:"foreignKey:GuestID;references:ID"`
	Room  *roomModel  `gorm:"foreignKey:RoomID;references:ID"`
}

func (bookingModel) TableName() string { return "bookings" }

type paymentModel struct {
	ID               int64     `gorm:"column:payment_id;primaryKey"`
	BookingID        int64     `gorm:"column:booking_id;not null;index"`
	Amount           float64   `gorm:"column:amount;not null"`
	Method           string    `gorm:"column:method;not null"`
	PaidAt           time.Time `gorm:"column:paid_at;not null"`
	PaymentReference *string   `gorm:"column:payment_reference"`

	Booking *bookingModel `gorm:"foreignKey:BookingID;references:ID"`
}

func (paymentModel) TableName() string { return "payments" }

type adjustmentModel struct {
	ID        int64     `gorm:"column:adjustment_id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;not null;index"`
	Amount    float64   `gorm:"column:amount;not null"`
	Type      string    `gorm:"column:type;not null"`
	Reason    *string   `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Booking *bookingModel `gorm:"foreignKey:BookingID;references:ID"`
}

func (adjustmentModel) TableName() string { return "payment_adjustments" }

type staffUserModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	FullName     string    `gorm:"column:full_name"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (staffUserModel) TableName() string { return "staff_users" }

type roomStatusAuditModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RoomID    int64     `gorm:"column:room_id;not null;index"`
	ActorID   int64     `gorm:"column:actor_id;not null"`
	ActorRole string    `gorm:"column:actor_role;not null"`
	OldStatus string    `gorm:"column:old_status;not null"`
	NewStatus string    `gorm:"column:new_status;not null"`
	Forced    bool      `gorm:"column:forced;not null"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (roomStatusAuditModel) TableName() string { return "room_status_audits" }

// Migrate creates the schema and, on PostgreSQL, the constraints the
// correctness invariants lean on: the booking range-exclusion constraint
// (two concurrent creators for the same room cannot both commit overlapping
// active bookings) and the payment idempotency key.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&branchModel{},
		&roomTypeModel{},
		&roomModel{},
		&guestModel{},
		&bookingModel{},
		&paymentModel{},
		&adjustmentModel{},
		&staffUserModel{},
		&roomStatusAuditModel{},
	); err != nil {
		return err
	}

	if database.IsPostgres(db) {
		stmts := []string{
			`CREATE EXTENSION IF NOT EXISTS btree_gist`,
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS excl_booking_no_overlap`,
			`ALTER TABLE bookings ADD CONSTRAINT excl_booking_no_overlap
				EXCLUDE USING gist (
					room_id WITH =,
					daterange(check_in_date, check_out_date, '[)') WITH &&
				) WHERE (status IN ('Booked', 'Checked-In'))`,
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_booking_payment_ref
				ON payments (booking_id, payment_reference)
				WHERE payment_reference IS NOT NULL`,
		}
		for _, s := range stmts {
			if err := db.Exec(s).Error; err != nil {
				return err
			}
		}
		return nil
	}

	// SQLite: partial unique index for the idempotency key. No range
	// exclusion support; the service-level conflict check is the guard.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_booking_payment_ref
		ON payments (booking_id, payment_reference)
		WHERE payment_reference IS NOT NULL`).Error
}

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:             m.ID,
		GuestID:        m.GuestID,
		RoomID:         m.RoomID,
		CheckInDate:    m.CheckInDate,
		CheckOutDate:   m.CheckOutDate,
		Status:         domain.BookingStatus(m.Status),
		BookedRate:     m.BookedRate,
		TaxRatePercent: m.TaxRatePercent,
		AdvancePayment: m.AdvancePayment,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Guest != nil {
		b.Guest = toDomainGuest(*m.Guest)
	}
	if m.Room != nil {
		b.Room = toDomainRoom(*m.Room)
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		GuestID:        b.GuestID,
		RoomID:         b.RoomID,
		CheckInDate:    b.CheckInDate,
		CheckOutDate:   b.CheckOutDate,
		Status:         string(b.Status),
		BookedRate:     b.BookedRate,
		TaxRatePercent: b.TaxRatePercent,
		AdvancePayment: b.AdvancePayment,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toDomainRoom(m roomModel) *domain.Room {
	return &domain.Room{
		ID:         m.ID,
		RoomNumber: m.RoomNumber,
		RoomTypeID: m.RoomTypeID,
		BranchID:   m.BranchID,
		Status:     domain.RoomStatus(m.Status),
		Retired:    m.Retired,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toDomainGuest(m guestModel) *domain.Guest {
	return &domain.Guest{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
	}
}

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:               m.ID,
		BookingID:        m.BookingID,
		Amount:           m.Amount,
		Method:           domain.PaymentMethod(m.Method),
		PaidAt:           m.PaidAt,
		PaymentReference: m.PaymentReference,
	}
}

func toDomainAdjustment(m adjustmentModel) *domain.PaymentAdjustment {
	return &domain.PaymentAdjustment{
		ID:        m.ID,
		BookingID: m.BookingID,
		Amount:    m.Amount,
		Type:      domain.AdjustmentType(m.Type),
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}
