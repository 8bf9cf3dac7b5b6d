package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/user"
	"github.com/influencehub/marketplace-api/internal/platform/database/databasetest"
)

func TestSaveProfileUpserts(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	users := user.NewService(user.NewPostgresRepository(db), zap.NewNop())
	svc := NewService(NewPostgresRepository(db), users, zap.NewNop())

	creator, err := users.Register(ctx, "creator@example.com", user.RoleInfluencer)
	require.NoError(t, err)

	_, err = svc.GetProfile(ctx, creator.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := svc.SaveProfile(ctx, Profile{
		UserID:       creator.ID,
		Name:         "Ada",
		Niche:        "stationery",
		ContentTypes: []string{"reels", " stories ", "", "reels"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"reels", "stories"}, saved.ContentTypes)
	assert.Equal(t, "stationery", saved.Niche)

	updated, err := svc.SaveProfile(ctx, Profile{UserID: creator.ID, Name: "Ada L.", Bio: "writes about pens"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "writes about pens", updated.Bio)
	assert.Empty(t, updated.Niche)
	assert.Equal(t, []string{}, updated.ContentTypes)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM influencer_profiles`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSaveProfileValidation(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	users := user.NewService(user.NewPostgresRepository(db), zap.NewNop())
	svc := NewService(NewPostgresRepository(db), users, zap.NewNop())

	vendor, err := users.Register(ctx, "shop@example.com", user.RoleVendor)
	require.NoError(t, err)

	_, err = svc.SaveProfile(ctx, Profile{UserID: vendor.ID, Name: "Shop"})
	assert.ErrorIs(t, err, ErrNotInfluencer)

	_, err = svc.SaveProfile(ctx, Profile{UserID: vendor.ID})
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = svc.SaveProfile(ctx, Profile{UserID: 404, Name: "Ghost"})
	assert.ErrorIs(t, err, user.ErrNotFound)
}
