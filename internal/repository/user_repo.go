package repository

import (
	"context"

	"gorm.io/gorm"

	"hoteldesk/internal/domain"
)

type StaffUserRepository struct {
	db *gorm.DB
}

func NewStaffUserRepository(db *gorm.DB) *StaffUserRepository {
	return &StaffUserRepository{db: db}
}

func (r *StaffUserRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error) {
	var m staffUserModel
	if tx := r.db.WithContext(ctx).Where("email = ?", email).First(&m); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaffUser(m), nil
}

func (r *StaffUserRepository) Create(ctx context.Context, u *domain.StaffUser) error {
	m := staffUserModel{
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainStaffUser(m)
	return nil
}

func toDomainStaffUser(m staffUserModel) *domain.StaffUser {
	return &domain.StaffUser{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
