package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, userID int64) (*Profile, error) {
	p := &Profile{}
	var contentTypes pq.StringArray
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, niche, followers_range, engagement, bio, availability, content_types, updated_at
		FROM influencer_profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.Name, &p.Niche, &p.FollowersRange, &p.Engagement,
			&p.Bio, &p.Availability, &contentTypes, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.ContentTypes = []string(contentTypes)
	if p.ContentTypes == nil {
		p.ContentTypes = []string{}
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO influencer_profiles
		  (user_id, name, niche, followers_range, engagement, bio, availability, content_types, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
		  name            = excluded.name,
		  niche           = excluded.niche,
		  followers_range = excluded.followers_range,
		  engagement      = excluded.engagement,
		  bio             = excluded.bio,
		  availability    = excluded.availability,
		  content_types   = excluded.content_types,
		  updated_at      = excluded.updated_at`,
		p.UserID, p.Name, p.Niche, p.FollowersRange, p.Engagement,
		p.Bio, p.Availability, pq.Array(p.ContentTypes), p.UpdatedAt)
	return err
}
