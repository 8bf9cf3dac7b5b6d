package analytics

import "github.com/shopspring/decimal"

// Report is a vendor's sales dashboard.
type Report struct {
	KPIs     KPIs          `json:"kpis"`
	Sales    []ProductSale `json:"sales"`
	LowStock []LowStock    `json:"low_stock"`
	Insight  string        `json:"insight"`
}

type KPIs struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TotalUnits   int             `json:"total_units"`
	ProductCount int             `json:"product_count"`
	BillCount    int             `json:"bill_count"`
}

// ProductSale aggregates every bill line for one product.
type ProductSale struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

type LowStock struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	QuantityAvailable int    `json:"quantity_available"`
}
