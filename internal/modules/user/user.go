package user

import (
	"context"
	"errors"
	"time"
)

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleVendor     Role = "vendor"
	RoleInfluencer Role = "influencer"
)

// DefaultTokens is the credit balance granted on registration.
const DefaultTokens = 200

// User represents a registered vendor or influencer.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Tokens    int       `json:"tokens"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidRole        = errors.New("role must be vendor or influencer")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInsufficientTokens = errors.New("not enough tokens")
	ErrNotVendor          = errors.New("user is not a vendor")
)

// Repository defines user data storage.
type Repository interface {
	// CreateIfAbsent inserts the user unless the email is already registered.
	CreateIfAbsent(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// DeductTokens atomically subtracts amount and returns the new balance.
	DeductTokens(ctx context.Context, id int64, amount int) (int, error)
}
