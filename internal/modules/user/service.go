package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service defines the user and token business logic.
type Service interface {
	// Register returns the existing user for the email or creates a new one.
	Register(ctx context.Context, email string, role Role) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	GetTokens(ctx context.Context, id int64) (int, error)
	DeductTokens(ctx context.Context, id int64, amount int) (int, error)
	// RequireVendor fails unless id belongs to a user with the vendor role.
	RequireVendor(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Register(ctx context.Context, email string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	role = Role(strings.ToLower(strings.TrimSpace(string(role))))
	if role != RoleVendor && role != RoleInfluencer {
		return nil, ErrInvalidRole
	}

	if err := s.repo.CreateIfAbsent(ctx, &User{
		Email:     email,
		Role:      role,
		Tokens:    DefaultTokens,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetTokens(ctx context.Context, id int64) (int, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.Tokens, nil
}

func (s *service) DeductTokens(ctx context.Context, id int64, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	balance, err := s.repo.DeductTokens(ctx, id, amount)
	if err != nil {
		return 0, err
	}
	s.log.Info("tokens deducted",
		zap.Int64("user_id", id),
		zap.Int("amount", amount),
		zap.Int("balance", balance),
	)
	return balance, nil
}

func (s *service) RequireVendor(ctx context.Context, id int64) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role != RoleVendor {
		return ErrNotVendor
	}
	return nil
}
