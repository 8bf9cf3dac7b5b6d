package inventory

import "context"

// Repository defines product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, vendorID, id int64) (*Product, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*Product, error)
	ListLowStock(ctx context.Context, vendorID int64, threshold int) ([]*Product, error)
	Restock(ctx context.Context, vendorID, id int64, qty int) error

	// LockForSale reads the vendor's products with the given ids, holding row
	// locks until the surrounding transaction ends. Missing ids are absent
	// from the result.
	LockForSale(ctx context.Context, vendorID int64, ids []int64) (map[int64]*Product, error)
	// DecrementStock subtracts qty, failing with ErrInsufficientStock rather
	// than letting quantity_available go negative.
	DecrementStock(ctx context.Context, id int64, qty int) error
}
