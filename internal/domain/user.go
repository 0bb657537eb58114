package domain

import "time"

type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleManager      Role = "Manager"
	RoleReceptionist Role = "Receptionist"
	RoleAccountant   Role = "Accountant"
	RoleHousekeeping Role = "Housekeeping"
)

// StaffUser is a hotel staff account used to authenticate API calls. Guest
// identity is a separate read-only concern (see Guest).
type StaffUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity attached to a request, used for
// capability checks and audit attribution.
type Actor struct {
	UserID int64
	Role   Role
}
