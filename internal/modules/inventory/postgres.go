package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepo struct {
	db      database.DBTX
	dialect database.Dialect
}

// NewPostgresRepository returns a product repository over db, which may be a
// pool or an open transaction.
func NewPostgresRepository(db database.DBTX, dialect database.Dialect) Repository {
	return &postgresRepo{db: db, dialect: dialect}
}

const productColumns = `id, vendor_id, product_name, cost_price, quantity_available, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (vendor_id, product_name, cost_price, quantity_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.VendorID, p.ProductName, p.CostPrice, p.QuantityAvailable, p.CreatedAt, p.UpdatedAt).
		Scan(&p.ID)
}

func (r *postgresRepo) GetByID(ctx context.Context, vendorID, id int64) (*Product, error) {
	p, err := r.scan(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id = $1 AND vendor_id = $2`, id, vendorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID int64) ([]*Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE vendor_id = $1 ORDER BY id ASC`, vendorID)
}

func (r *postgresRepo) ListLowStock(ctx context.Context, vendorID int64, threshold int) ([]*Product, error) {
	return r.query(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE vendor_id = $1 AND quantity_available < $2
		ORDER BY quantity_available ASC, id ASC`, vendorID, threshold)
}

func (r *postgresRepo) Restock(ctx context.Context, vendorID, id int64, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET quantity_available = quantity_available + $1, updated_at = $2
		WHERE id = $3 AND vendor_id = $4`, qty, time.Now().UTC(), id, vendorID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) LockForSale(ctx context.Context, vendorID int64, ids []int64) (map[int64]*Product, error) {
	out := make(map[int64]*Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// Locks are taken in ascending id order so that two bills touching the
	// same products cannot deadlock each other.
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	args := []any{vendorID}
	placeholders := make([]string, 0, len(sorted))
	for _, id := range sorted {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	products, err := r.query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE vendor_id = $1 AND id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY id ASC`+r.dialect.ForUpdate(), args...)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *postgresRepo) DecrementStock(ctx context.Context, id int64, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET quantity_available = quantity_available - $1, updated_at = $2
		WHERE id = $3 AND quantity_available >= $1`, qty, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresRepo) scan(row rowScanner) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.VendorID, &p.ProductName, &p.CostPrice,
		&p.QuantityAvailable, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
