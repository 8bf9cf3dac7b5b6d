package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// VendorGuard confirms that an id belongs to a vendor account.
type VendorGuard interface {
	RequireVendor(ctx context.Context, id int64) error
}

// Service defines campaign business logic.
type Service interface {
	CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error)
	GetCampaign(ctx context.Context, id int64) (*Campaign, error)
	ListCampaigns(ctx context.Context, vendorID int64) ([]*Campaign, error)
}

type service struct {
	repo    Repository
	vendors VendorGuard
	log     *zap.Logger
}

func NewService(repo Repository, vendors VendorGuard, log *zap.Logger) Service {
	return &service{repo: repo, vendors: vendors, log: log}
}

func (s *service) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error) {
	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		return nil, fmt.Errorf("%w: product_name is required", ErrInvalidCampaign)
	}
	if err := s.vendors.RequireVendor(ctx, req.VendorID); err != nil {
		return nil, err
	}

	c := &Campaign{
		VendorID:    req.VendorID,
		ProductName: name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	s.log.Info("campaign created", zap.Int64("campaign_id", c.ID), zap.Int64("vendor_id", c.VendorID))
	return c, nil
}

func (s *service) GetCampaign(ctx context.Context, id int64) (*Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCampaigns returns every campaign, or only vendorID's when it is set.
func (s *service) ListCampaigns(ctx context.Context, vendorID int64) ([]*Campaign, error) {
	if vendorID > 0 {
		return s.repo.ListByVendor(ctx, vendorID)
	}
	return s.repo.List(ctx)
}
