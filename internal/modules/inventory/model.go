package inventory

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a vendor's sellable item and its on-hand stock.
type Product struct {
	ID                int64           `json:"id"`
	VendorID          int64           `json:"vendor_id"`
	ProductName       string          `json:"product_name"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	QuantityAvailable int             `json:"quantity_available"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateProductRequest is the payload for adding a product to a vendor's inventory.
type CreateProductRequest struct {
	VendorID          int64           `json:"vendor_id"`
	ProductName       string          `json:"product_name"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	QuantityAvailable int             `json:"quantity_available"`
}

// RestockRequest is the payload for adding units to an existing product.
type RestockRequest struct {
	VendorID int64 `json:"vendor_id"`
	Quantity int   `json:"quantity"`
}

var (
	ErrNotFound          = errors.New("product not found")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInsufficientStock = errors.New("insufficient stock")
)
