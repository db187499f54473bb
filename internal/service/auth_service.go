package service

import (
	"context"
	"errors"
	"fmt"

	"invoice_idor/internal/models"
	"invoice_idor/internal/repository"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService checks seeded credentials. Passwords are compared as plaintext.
type AuthService struct {
	users repository.UserRepo
}

func NewAuthService(users repository.UserRepo) *AuthService {
	return &AuthService{users: users}
}

// Login returns the user whose username and password match exactly.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// UserByID returns nil without error when no such user exists.
func (s *AuthService) UserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", id, err)
	}
	return u, nil
}
