package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/influencehub/marketplace-api/internal/modules/insight"
	"github.com/influencehub/marketplace-api/internal/modules/inventory"
)

type StockLister interface {
	ListLowStock(ctx context.Context, vendorID int64, threshold int) ([]*inventory.Product, error)
}

type Insighter interface {
	Insight(ctx context.Context, p insight.Prompt) string
}

// Service defines analytics business logic.
type Service interface {
	VendorAnalytics(ctx context.Context, vendorID int64) (*Report, error)
}

type service struct {
	repo      Repository
	stock     StockLister
	insights  Insighter
	threshold int
}

// NewService creates the analytics service. Products with fewer than
// lowStockThreshold units are reported as low stock.
func NewService(repo Repository, stock StockLister, insights Insighter, lowStockThreshold int) Service {
	return &service{repo: repo, stock: stock, insights: insights, threshold: lowStockThreshold}
}

func (s *service) VendorAnalytics(ctx context.Context, vendorID int64) (*Report, error) {
	sales, err := s.repo.SalesByProduct(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("sales by product: %w", err)
	}
	bills, err := s.repo.CountBills(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("count bills: %w", err)
	}
	low, err := s.stock.ListLowStock(ctx, vendorID, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}

	report := &Report{
		KPIs: KPIs{
			TotalRevenue: decimal.Zero,
			TotalProfit:  decimal.Zero,
			ProductCount: len(sales),
			BillCount:    bills,
		},
		Sales:    sales,
		LowStock: make([]LowStock, 0, len(low)),
	}
	prompt := insight.Prompt{
		VendorID: vendorID,
		Sales:    make([]insight.ProductSales, 0, len(sales)),
		LowStock: make([]string, 0, len(low)),
	}
	for _, sale := range sales {
		report.KPIs.TotalRevenue = report.KPIs.TotalRevenue.Add(sale.Revenue)
		report.KPIs.TotalProfit = report.KPIs.TotalProfit.Add(sale.Profit)
		report.KPIs.TotalUnits += sale.Quantity
		prompt.Sales = append(prompt.Sales, insight.ProductSales{
			Name:     sale.Name,
			Quantity: sale.Quantity,
			Revenue:  sale.Revenue,
			Profit:   sale.Profit,
		})
	}
	for _, p := range low {
		report.LowStock = append(report.LowStock, LowStock{
			ProductID:         p.ID,
			ProductName:       p.ProductName,
			QuantityAvailable: p.QuantityAvailable,
		})
		prompt.LowStock = append(prompt.LowStock, p.ProductName)
	}
	prompt.TotalRevenue = report.KPIs.TotalRevenue
	prompt.TotalProfit = report.KPIs.TotalProfit

	report.Insight = s.insights.Insight(ctx, prompt)
	return report, nil
}
