package profile

import (
	"context"
	"errors"
	"time"
)

// Profile describes an influencer to vendors browsing for partners.
type Profile struct {
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Niche          string    `json:"niche"`
	FollowersRange string    `json:"followers_range"`
	Engagement     string    `json:"engagement"`
	Bio            string    `json:"bio"`
	Availability   string    `json:"availability"`
	ContentTypes   []string  `json:"content_types"`
	UpdatedAt      time.Time `json:"updated_at"`
}

var (
	ErrNotFound       = errors.New("profile not found")
	ErrInvalidProfile = errors.New("invalid profile")
	ErrNotInfluencer  = errors.New("user is not an influencer")
)

// Repository defines influencer profile storage.
type Repository interface {
	Get(ctx context.Context, userID int64) (*Profile, error)
	// Upsert inserts the profile or replaces the existing one for the same user.
	Upsert(ctx context.Context, p *Profile) error
}
