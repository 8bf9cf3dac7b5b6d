package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill is one completed sale: a header plus the lines that were sold.
type Bill struct {
	ID          int64           `json:"id"`
	VendorID    int64           `json:"vendor_id"`
	Reference   string          `json:"reference"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	CreatedAt   time.Time       `json:"created_at"`
	Lines       []*BillLine     `json:"lines,omitempty"`
}

// BillLine records a single product sold on a bill. CostPrice is the
// product's cost at the moment of sale and never changes afterwards.
type BillLine struct {
	ID           int64           `json:"id"`
	BillID       int64           `json:"bill_id"`
	VendorID     int64           `json:"vendor_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Profit       decimal.Decimal `json:"profit"`
}

// BillRequest is the payload accepted by SubmitBill.
type BillRequest struct {
	VendorID int64             `json:"vendor_id" validate:"required,gt=0"`
	Items    []BillItemRequest `json:"items" validate:"required,min=1,dive"`
}

// BillItemRequest is one requested line. SellingPrice is per unit; a missing
// or null price decodes as invalid and is rejected by Validate.
type BillItemRequest struct {
	ProductID    int64               `json:"product_id" validate:"required,gt=0"`
	Quantity     int                 `json:"quantity" validate:"gt=0"`
	SellingPrice decimal.NullDecimal `json:"selling_price"`
}

// Receipt is what a caller gets back from a successful SubmitBill.
type Receipt struct {
	BillID      int64           `json:"bill_id"`
	Reference   string          `json:"reference"`
	Items       []ReceiptLine   `json:"items"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

type ReceiptLine struct {
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
}

// Receipt renders the caller-facing summary of b.
func (b *Bill) Receipt() *Receipt {
	r := &Receipt{
		BillID:      b.ID,
		Reference:   b.Reference,
		Items:       make([]ReceiptLine, 0, len(b.Lines)),
		GrandTotal:  b.GrandTotal,
		TotalProfit: b.TotalProfit,
	}
	for _, l := range b.Lines {
		r.Items = append(r.Items, ReceiptLine{
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			PricePerUnit: l.SellingPrice,
			Total:        l.LineTotal,
		})
	}
	return r
}

// generateReference creates a human-readable bill reference: BILL-YYYYMMDD-XXXXXXXX
func generateReference(now time.Time) string {
	date := now.UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("BILL-%s-%s", date, suffix)
}
