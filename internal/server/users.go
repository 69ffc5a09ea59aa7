package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/types"
)

// UserService handles registration and credential verification.
type UserService struct {
	db       *db.DB
	password *config.PasswordConfig
}

// NewUserService creates a new user service.
func NewUserService(database *db.DB, password *config.PasswordConfig) *UserService {
	return &UserService{db: database, password: password}
}

// Register creates a new account. Emails are stored lowercase.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	hash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	userID, err := s.db.CreateUser(ctx, email, req.FullName, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.db.GetUser(ctx, userID)
	if err != nil || created == nil {
		return nil, fmt.Errorf("failed to load created user: %w", err)
	}
	return toAPIUser(created), nil
}

// Login verifies credentials and returns the account. Unknown email, wrong
// password and deactivated accounts all return the same error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.db.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !user.IsActive || !s.password.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return toAPIUser(user), nil
}

func toAPIUser(u *db.User) *types.User {
	return &types.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
