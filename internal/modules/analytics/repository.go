package analytics

import "context"

// Repository reads aggregated sales figures.
type Repository interface {
	// SalesByProduct returns per-product totals ordered by revenue, highest first.
	SalesByProduct(ctx context.Context, vendorID int64) ([]ProductSale, error)
	CountBills(ctx context.Context, vendorID int64) (int, error)
}
