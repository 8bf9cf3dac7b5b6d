package inventory

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

// Service defines inventory business logic for vendor products.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, vendorID, id int64) (*Product, error)
	ListProducts(ctx context.Context, vendorID int64) ([]*Product, error)
	ListLowStock(ctx context.Context, vendorID int64, threshold int) ([]*Product, error)
	Restock(ctx context.Context, id int64, req RestockRequest) (*Product, error)
}

type service struct {
	repo    Repository
	vendors VendorGuard
	log     *zap.Logger
}

// NewService creates a new inventory service.
func NewService(repo Repository, vendors VendorGuard, log *zap.Logger) Service {
	return &service{repo: repo, vendors: vendors, log: log}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	name := strings.TrimSpace(req.ProductName)
	switch {
	case req.VendorID <= 0:
		return nil, fmt.Errorf("%w: vendor_id is required", ErrInvalidProduct)
	case name == "":
		return nil, fmt.Errorf("%w: product_name is required", ErrInvalidProduct)
	case req.CostPrice.IsNegative():
		return nil, fmt.Errorf("%w: cost_price cannot be negative", ErrInvalidProduct)
	case req.QuantityAvailable < 0:
		return nil, fmt.Errorf("%w: quantity_available cannot be negative", ErrInvalidProduct)
	}
	if err := s.vendors.RequireVendor(ctx, req.VendorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Product{
		VendorID:          req.VendorID,
		ProductName:       name,
		CostPrice:         req.CostPrice.Round(2),
		QuantityAvailable: req.QuantityAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info("product created",
		zap.Int64("vendor_id", p.VendorID),
		zap.Int64("product_id", p.ID),
		zap.Int("quantity_available", p.QuantityAvailable),
	)
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, vendorID, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, vendorID, id)
}

func (s *service) ListProducts(ctx context.Context, vendorID int64) ([]*Product, error) {
	products, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}
	return products, nil
}

func (s *service) ListLowStock(ctx context.Context, vendorID int64, threshold int) ([]*Product, error) {
	return s.repo.ListLowStock(ctx, vendorID, threshold)
}

func (s *service) Restock(ctx context.Context, id int64, req RestockRequest) (*Product, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidProduct)
	}
	if err := s.repo.Restock(ctx, req.VendorID, id, req.Quantity); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, req.VendorID, id)
}
