package billing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/inventory"
)

// Service defines billing business logic.
type Service interface {
	SubmitBill(ctx context.Context, req BillRequest) (*Receipt, error)
	GetBill(ctx context.Context, vendorID, id int64) (*Bill, error)
	ListBills(ctx context.Context, vendorID int64) ([]*Bill, error)
}

type service struct {
	repo    Repository
	metrics *Metrics
	log     *zap.Logger
	now     func() time.Time
}

// NewService creates the billing service. metrics may be nil.
func NewService(repo Repository, metrics *Metrics, log *zap.Logger) Service {
	return &service{repo: repo, metrics: metrics, log: log, now: time.Now}
}

// SubmitBill records a multi-line sale. Either every line is billed and
// every product decremented, or nothing changes. The first failing line in
// request order determines the error.
func (s *service) SubmitBill(ctx context.Context, req BillRequest) (*Receipt, error) {
	start := s.now()

	if err := req.Validate(); err != nil {
		s.metrics.observe(outcomeInvalid, 0, time.Since(start))
		return nil, err
	}

	var bill *Bill
	err := s.repo.WithinTx(ctx, func(st Stores) error {
		b, err := s.record(ctx, st, req)
		bill = b
		return err
	})

	outcome := outcomeOf(err)
	s.metrics.observe(outcome, len(req.Items), time.Since(start))
	if err != nil {
		fields := []zap.Field{
			zap.Int64("vendor_id", req.VendorID),
			zap.Int("lines", len(req.Items)),
			zap.String("outcome", outcome),
			zap.Error(err),
		}
		if outcome == outcomePersistence {
			s.log.Error("bill rejected", fields...)
		} else {
			s.log.Info("bill rejected", fields...)
		}
		return nil, err
	}

	s.log.Info("bill accepted",
		zap.Int64("vendor_id", bill.VendorID),
		zap.Int64("bill_id", bill.ID),
		zap.String("reference", bill.Reference),
		zap.Int("lines", len(bill.Lines)),
		zap.String("grand_total", bill.GrandTotal.StringFixed(2)),
	)
	return bill.Receipt(), nil
}

// record runs inside the billing transaction. Products are locked first,
// every line is checked against the stock still remaining for this request,
// and only then are the bill, its lines and the decrements written.
func (s *service) record(ctx context.Context, st Stores, req BillRequest) (*Bill, error) {
	ids := make([]int64, 0, len(req.Items))
	seen := make(map[int64]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := st.Products.LockForSale(ctx, req.VendorID, ids)
	if err != nil {
		return nil, &PersistenceError{Op: "lock products", Err: err}
	}

	bill := &Bill{
		VendorID:    req.VendorID,
		Reference:   generateReference(s.now()),
		GrandTotal:  decimal.Zero,
		TotalProfit: decimal.Zero,
		CreatedAt:   s.now().UTC(),
	}
	remaining := make(map[int64]int, len(products))
	for _, item := range req.Items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		left, ok := remaining[p.ID]
		if !ok {
			left = p.QuantityAvailable
		}
		if left < item.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.ProductName,
				Requested:   item.Quantity,
				Available:   left,
			}
		}
		remaining[p.ID] = left - item.Quantity

		line := priceLine(req.VendorID, p, item)
		bill.Lines = append(bill.Lines, line)
		bill.GrandTotal = bill.GrandTotal.Add(line.LineTotal)
		bill.TotalProfit = bill.TotalProfit.Add(line.Profit)
	}

	if err := st.Bills.CreateBill(ctx, bill); err != nil {
		return nil, &PersistenceError{Op: "create bill", Err: err}
	}
	for _, line := range bill.Lines {
		if err := st.Products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			if errors.Is(err, inventory.ErrInsufficientStock) {
				// The row is locked, so this only fires if the lock was not honoured.
				return nil, s.stockShortfall(ctx, st, req.VendorID, line)
			}
			return nil, &PersistenceError{Op: "decrement stock", Err: err}
		}
		line.BillID = bill.ID
		if err := st.Bills.AppendLine(ctx, line); err != nil {
			return nil, &PersistenceError{Op: "append line", Err: err}
		}
	}
	return bill, nil
}

// stockShortfall reports a decrement refused by the stock guard, with the
// quantity the product holds now.
func (s *service) stockShortfall(ctx context.Context, st Stores, vendorID int64, line *BillLine) error {
	p, err := st.Products.GetByID(ctx, vendorID, line.ProductID)
	if err != nil {
		return &PersistenceError{Op: "reload product", Err: err}
	}
	return &InsufficientStockError{
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Requested:   line.Quantity,
		Available:   p.QuantityAvailable,
	}
}

// priceLine computes totals with the cost price read under lock.
func priceLine(vendorID int64, p *inventory.Product, item BillItemRequest) *BillLine {
	qty := decimal.NewFromInt(int64(item.Quantity))
	price := item.SellingPrice.Decimal
	return &BillLine{
		VendorID:     vendorID,
		ProductID:    p.ID,
		ProductName:  p.ProductName,
		Quantity:     item.Quantity,
		CostPrice:    p.CostPrice,
		SellingPrice: price,
		LineTotal:    price.Mul(qty),
		Profit:       price.Sub(p.CostPrice).Mul(qty),
	}
}

func (s *service) GetBill(ctx context.Context, vendorID, id int64) (*Bill, error) {
	return s.repo.GetBill(ctx, vendorID, id)
}

func (s *service) ListBills(ctx context.Context, vendorID int64) ([]*Bill, error) {
	return s.repo.ListBills(ctx, vendorID)
}
