// Package insight turns a vendor's sales figures into a short marketing
// summary, using a language model when one is configured.
package insight

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductSales is one product's sales totals.
type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// Prompt holds the facts an insight is written from. Sales are ordered by
// revenue, highest first.
type Prompt struct {
	VendorID     int64           `json:"vendor_id"`
	Sales        []ProductSales  `json:"sales"`
	LowStock     []string        `json:"low_stock"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// Generator writes insight text for a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}
