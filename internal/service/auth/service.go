package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/rakitahr/hrms-backend-go/internal/domain/auth"
	"github.com/rakitahr/hrms-backend-go/internal/domain/user"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/jwt"
)

type AuthService struct {
	userRepo user.UserRepository
	jwt      jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwtService}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password collapse into the same error so the response does not leak
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(account.ID, account.Email, account.IsAdmin, account.EmployeeID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		IsAdmin:     account.IsAdmin,
	}, nil
}
