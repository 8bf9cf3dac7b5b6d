package campaign

import "context"

// Repository defines campaign data storage.
type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id int64) (*Campaign, error)
	List(ctx context.Context) ([]*Campaign, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*Campaign, error)
}
