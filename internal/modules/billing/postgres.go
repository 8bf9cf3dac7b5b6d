package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/inventory"
	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepo struct {
	db          *sql.DB
	dialect     database.Dialect
	maxAttempts int
	log         *zap.Logger
}

// NewPostgresRepository returns the bill repository. maxAttempts bounds how
// many times WithinTx replays a transaction after a lock conflict.
func NewPostgresRepository(db *sql.DB, dialect database.Dialect, maxAttempts int, log *zap.Logger) Repository {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &postgresRepo{db: db, dialect: dialect, maxAttempts: maxAttempts, log: log}
}

func (r *postgresRepo) WithinTx(ctx context.Context, fn func(Stores) error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = r.runTx(ctx, fn)
		if err == nil || !database.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
		r.log.Warn("billing transaction conflict, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.maxAttempts),
			zap.Error(err),
		)
	}
	return &PersistenceError{Op: "retries exhausted", Err: err}
}

// runTx inserts the bill and all its lines and moves stock inside a single
// transaction.
func (r *postgresRepo) runTx(ctx context.Context, fn func(Stores) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	stores := Stores{
		Products: inventory.NewPostgresRepository(tx, r.dialect),
		Bills:    &billWriter{tx: tx},
	}
	if err := fn(stores); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

func (r *postgresRepo) GetBill(ctx context.Context, vendorID, id int64) (*Bill, error) {
	b := &Bill{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, vendor_id, reference, grand_total, total_profit, created_at
		FROM bills WHERE id = $1 AND vendor_id = $2`, id, vendorID).
		Scan(&b.ID, &b.VendorID, &b.Reference, &b.GrandTotal, &b.TotalProfit, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Lines, err = r.listLines(ctx, b.ID)
	return b, err
}

func (r *postgresRepo) ListBills(ctx context.Context, vendorID int64) ([]*Bill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, vendor_id, reference, grand_total, total_profit, created_at
		FROM bills WHERE vendor_id = $1 ORDER BY created_at DESC, id DESC`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bills := []*Bill{}
	for rows.Next() {
		b := &Bill{}
		if err := rows.Scan(&b.ID, &b.VendorID, &b.Reference, &b.GrandTotal, &b.TotalProfit, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *postgresRepo) listLines(ctx context.Context, billID int64) ([]*BillLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT bl.id, bl.bill_id, bl.vendor_id, bl.product_id, p.product_name,
		       bl.quantity, bl.cost_price, bl.selling_price, bl.line_total, bl.profit
		FROM bill_lines bl
		JOIN products p ON p.id = bl.product_id
		WHERE bl.bill_id = $1
		ORDER BY bl.id ASC`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*BillLine
	for rows.Next() {
		l := &BillLine{}
		if err := rows.Scan(&l.ID, &l.BillID, &l.VendorID, &l.ProductID, &l.ProductName,
			&l.Quantity, &l.CostPrice, &l.SellingPrice, &l.LineTotal, &l.Profit); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ── transactional writer ─────────────────────────────────────────────────────

type billWriter struct{ tx *sql.Tx }

func (w *billWriter) CreateBill(ctx context.Context, b *Bill) error {
	err := w.tx.QueryRowContext(ctx, `
		INSERT INTO bills (vendor_id, reference, grand_total, total_profit, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		b.VendorID, b.Reference, b.GrandTotal, b.TotalProfit, b.CreatedAt).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

func (w *billWriter) AppendLine(ctx context.Context, l *BillLine) error {
	err := w.tx.QueryRowContext(ctx, `
		INSERT INTO bill_lines
		  (bill_id, vendor_id, product_id, quantity, cost_price, selling_price, line_total, profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		l.BillID, l.VendorID, l.ProductID, l.Quantity,
		l.CostPrice, l.SellingPrice, l.LineTotal, l.Profit).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert bill_line: %w", err)
	}
	return nil
}
