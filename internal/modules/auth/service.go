package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "hoteldesk/internal/pkg/jwt"
	"hoteldesk/internal/repository"
)

type Service struct {
	users staffUserRepo
	jwt   *jwtsvc.Service
}

func NewService(users staffUserRepo, jwt *jwtsvc.Service) *Service {
	return &Service{users: users, jwt: jwt}
}

// Login verifies staff credentials and issues a signed access token. Unknown
// emails and wrong passwords produce the same error so the endpoint does not
// leak which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User: &PublicUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}
