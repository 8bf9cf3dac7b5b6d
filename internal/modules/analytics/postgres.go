package analytics

import (
	"context"

	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) SalesByProduct(ctx context.Context, vendorID int64) ([]ProductSale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.product_name,
		       SUM(bl.quantity)   AS quantity,
		       SUM(bl.line_total) AS revenue,
		       SUM(bl.profit)     AS profit
		FROM bill_lines bl
		JOIN products p ON p.id = bl.product_id
		WHERE bl.vendor_id = $1
		GROUP BY p.id, p.product_name
		ORDER BY revenue DESC, p.id ASC`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sales := []ProductSale{}
	for rows.Next() {
		var s ProductSale
		if err := rows.Scan(&s.ProductID, &s.Name, &s.Quantity, &s.Revenue, &s.Profit); err != nil {
			return nil, err
		}
		// SQLite sums NUMERIC as floating point.
		s.Revenue = s.Revenue.Round(2)
		s.Profit = s.Profit.Round(2)
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) CountBills(ctx context.Context, vendorID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bills WHERE vendor_id = $1`, vendorID).Scan(&n)
	return n, err
}
