package auth

import (
	"context"

	"hoteldesk/internal/domain"
)

type staffUserRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}
