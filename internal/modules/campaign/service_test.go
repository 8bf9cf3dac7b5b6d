package campaign

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/user"
	"github.com/influencehub/marketplace-api/internal/platform/database/databasetest"
)

func TestCampaignLifecycle(t *testing.T) {
	db := databasetest.Open(t)
	ctx := context.Background()
	users := user.NewService(user.NewPostgresRepository(db), zap.NewNop())
	svc := NewService(NewPostgresRepository(db), users, zap.NewNop())

	vendor, err := users.Register(ctx, "shop@example.com", user.RoleVendor)
	require.NoError(t, err)
	other, err := users.Register(ctx, "other@example.com", user.RoleVendor)
	require.NoError(t, err)
	creator, err := users.Register(ctx, "creator@example.com", user.RoleInfluencer)
	require.NoError(t, err)

	first, err := svc.CreateCampaign(ctx, CreateCampaignRequest{VendorID: vendor.ID, ProductName: "Pen", Description: " Summer push "})
	require.NoError(t, err)
	assert.Equal(t, "Summer push", first.Description)
	_, err = svc.CreateCampaign(ctx, CreateCampaignRequest{VendorID: other.ID, ProductName: "Lamp"})
	require.NoError(t, err)

	got, err := svc.GetCampaign(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pen", got.ProductName)
	assert.Equal(t, vendor.ID, got.VendorID)

	all, err := svc.ListCampaigns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListCampaigns(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	_, err = svc.CreateCampaign(ctx, CreateCampaignRequest{VendorID: creator.ID, ProductName: "Pen"})
	assert.ErrorIs(t, err, user.ErrNotVendor)

	_, err = svc.CreateCampaign(ctx, CreateCampaignRequest{VendorID: vendor.ID, ProductName: "  "})
	assert.ErrorIs(t, err, ErrInvalidCampaign)

	_, err = svc.GetCampaign(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
