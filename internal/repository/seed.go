package repository

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

// SeedDemoData wipes and repopulates the schema with a small demo data set
// for local development. Never run against a production database.
func SeedDemoData(db *gorm.DB) error {
	log.Println("Cleaning old data...")
	tables := []string{
		"room_status_audits",
		"payment_adjustments",
		"payments",
		"bookings",
		"rooms",
		"room_types",
		"branches",
		"guests",
		"staff_users",
	}
	for _, tbl := range tables {
		if err := db.Exec("DELETE FROM " + tbl).Error; err != nil {
			return err
		}
	}

	log.Println("Creating branches and room types...")
	mainBuilding := branchModel{BranchName: "Main Building"}
	annex := branchModel{BranchName: "Garden Annex"}
	if err := db.Create(&mainBuilding).Error; err != nil {
		return err
	}
	if err := db.Create(&annex).Error; err != nil {
		return err
	}

	standard := roomTypeModel{Name: "Standard", Capacity: 2, DailyRate: 90}
	deluxe := roomTypeModel{Name: "Deluxe", Capacity: 3, DailyRate: 140}
	suite := roomTypeModel{Name: "Suite", Capacity: 4, DailyRate: 220}
	for _, rt := range []*roomTypeModel{&standard, &deluxe, &suite} {
		if err := db.Create(rt).Error; err != nil {
			return err
		}
	}

	log.Println("Creating rooms...")
	rooms := []roomModel{
		{RoomNumber: "101", RoomTypeID: standard.ID, BranchID: mainBuilding.ID, Status: string(domain.RoomAvailable)},
		{RoomNumber: "102", RoomTypeID: standard.ID, BranchID: mainBuilding.ID, Status: string(domain.RoomAvailable)},
		{RoomNumber: "103", RoomTypeID: deluxe.ID, BranchID: mainBuilding.ID, Status: string(domain.RoomAvailable)},
		{RoomNumber: "201", RoomTypeID: deluxe.ID, BranchID: mainBuilding.ID, Status: string(domain.RoomMaintenance)},
		{RoomNumber: "202", RoomTypeID: suite.ID, BranchID: mainBuilding.ID, Status: string(domain.RoomAvailable)},
		{RoomNumber: "G01", RoomTypeID: standard.ID, BranchID: annex.ID, Status: string(domain.RoomAvailable)},
		{RoomNumber: "G02", RoomTypeID: suite.ID, BranchID: annex.ID, Status: string(domain.RoomAvailable)},
	}
	for i := range rooms {
		if err := db.Create(&rooms[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Creating guests...")
	guests := []guestModel{
		{FullName: "Alia Nurlanova", Email: "alia@mail.test", Phone: "+7 701 111 2233"},
		{FullName: "Marco Ferreira", Email: "marco@mail.test", Phone: "+351 912 345 678"},
		{FullName: "Jin Park", Email: "jin@mail.test", Phone: "+82 10 2345 6789"},
	}
	for i := range guests {
		if err := db.Create(&guests[i]).Error; err != nil {
			return err
		}
	}

	log.Println("Creating staff users...")
	staff := []struct {
		email, name, password string
		role                  domain.Role
	}{
		{"admin@hoteldesk.test", "Hotel Admin", "admin123", domain.RoleAdmin},
		{"manager@hoteldesk.test", "Duty Manager", "manager123", domain.RoleManager},
		{"frontdesk@hoteldesk.test", "Front Desk", "desk123", domain.RoleReceptionist},
		{"accounts@hoteldesk.test", "Accounts", "money123", domain.RoleAccountant},
	}
	for _, s := range staff {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := staffUserModel{Email: s.email, FullName: s.name, PasswordHash: string(hash), Role: string(s.role)}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		log.Printf("Staff created: %s / %s", s.email, s.password)
	}

	log.Println("Creating bookings and payments...")
	today := time.Now().UTC().Truncate(24 * time.Hour)

	current := bookingModel{
		GuestID:        guests[0].ID,
		RoomID:         rooms[0].ID,
		CheckInDate:    today.AddDate(0, 0, -1),
		CheckOutDate:   today.AddDate(0, 0, 2),
		Status:         string(domain.BookingCheckedIn),
		BookedRate:     standard.DailyRate,
		AdvancePayment: 27,
	}
	upcoming := bookingModel{
		GuestID:        guests[1].ID,
		RoomID:         rooms[2].ID,
		CheckInDate:    today.AddDate(0, 0, 3),
		CheckOutDate:   today.AddDate(0, 0, 7),
		Status:         string(domain.BookingBooked),
		BookedRate:     deluxe.DailyRate,
		AdvancePayment: 56,
	}
	past := bookingModel{
		GuestID:      guests[2].ID,
		RoomID:       rooms[4].ID,
		CheckInDate:  today.AddDate(0, 0, -5),
		CheckOutDate: today,
		Status:       string(domain.BookingCheckedOut),
		BookedRate:   suite.DailyRate,
	}
	for _, b := range []*bookingModel{&current, &upcoming, &past} {
		if err := db.Create(b).Error; err != nil {
			return err
		}
	}
	if err := db.Model(&roomModel{}).Where("room_id = ?", rooms[0].ID).
		Update("status", string(domain.RoomOccupied)).Error; err != nil {
		return err
	}

	payments := []paymentModel{
		{BookingID: current.ID, Amount: 27, Method: string(domain.MethodCash), PaidAt: today.AddDate(0, 0, -1)},
		{BookingID: upcoming.ID, Amount: 56, Method: string(domain.MethodOnline), PaidAt: today, PaymentReference: newReference()},
		{BookingID: past.ID, Amount: 1100, Method: string(domain.MethodCard), PaidAt: today.AddDate(0, 0, -5), PaymentReference: newReference()},
	}
	for i := range payments {
		if err := db.Create(&payments[i]).Error; err != nil {
			return err
		}
	}

	reason := "late checkout waived"
	adj := adjustmentModel{
		BookingID: past.ID,
		Amount:    40,
		Type:      string(domain.AdjustmentRefund),
		Reason:    &reason,
	}
	if err := db.Create(&adj).Error; err != nil {
		return err
	}

	log.Println("Seed complete")
	return nil
}

func newReference() *string {
	ref := fmt.Sprintf("gw-%s", uuid.NewString())
	return &ref
}
