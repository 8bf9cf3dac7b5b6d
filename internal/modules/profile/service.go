package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/user"
)

type UserLookup interface {
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

// Service defines influencer profile business logic.
type Service interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) (*Profile, error)
}

type service struct {
	repo  Repository
	users UserLookup
	log   *zap.Logger
}

func NewService(repo Repository, users UserLookup, log *zap.Logger) Service {
	return &service{repo: repo, users: users, log: log}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

// SaveProfile creates or replaces the influencer's profile and returns the
// stored copy.
func (s *service) SaveProfile(ctx context.Context, p Profile) (*Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	u, err := s.users.GetUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleInfluencer {
		return nil, ErrNotInfluencer
	}

	p.ContentTypes = cleanContentTypes(p.ContentTypes)
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, &p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.log.Info("profile saved", zap.Int64("user_id", p.UserID))
	return s.repo.Get(ctx, p.UserID)
}

// cleanContentTypes trims entries and drops blanks and repeats, keeping order.
func cleanContentTypes(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, ct := range in {
		ct = strings.TrimSpace(ct)
		if ct == "" || seen[ct] {
			continue
		}
		seen[ct] = true
		out = append(out, ct)
	}
	return out
}
