package domain

import "time"

// Guest identity records are owned by an external collaborator; this core
// only reads them to resolve booking foreign keys.
type Guest struct {
	ID        int64     `json:"guest_id"`
	FullName  string    `json:"full_name" validate:"required"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
