package billing

import (
	"context"

	"github.com/influencehub/marketplace-api/internal/modules/inventory"
)

// Stores are the collaborators handed to a WithinTx callback. Every call on
// them runs inside the same database transaction.
type Stores struct {
	Products inventory.Repository
	Bills    BillWriter
}

// BillWriter appends bill records.
type BillWriter interface {
	CreateBill(ctx context.Context, b *Bill) error
	AppendLine(ctx context.Context, l *BillLine) error
}

// Repository defines bill storage and the transaction boundary for billing.
type Repository interface {
	// WithinTx runs fn in one transaction, committing if fn returns nil and
	// rolling back otherwise. Transient lock conflicts replay fn.
	WithinTx(ctx context.Context, fn func(Stores) error) error
	GetBill(ctx context.Context, vendorID, id int64) (*Bill, error)
	ListBills(ctx context.Context, vendorID int64) ([]*Bill, error)
}
