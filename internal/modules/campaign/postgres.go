package campaign

import (
	"context"
	"database/sql"
	"errors"

	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepo struct{ db database.DBTX }

func NewPostgresRepository(db database.DBTX) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Campaign) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO campaigns (vendor_id, product_name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.VendorID, c.ProductName, c.Description, c.CreatedAt).Scan(&c.ID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Campaign, error) {
	c := &Campaign{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, vendor_id, product_name, description, created_at
		FROM campaigns WHERE id = $1`, id).
		Scan(&c.ID, &c.VendorID, &c.ProductName, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Campaign, error) {
	return r.query(ctx, `
		SELECT id, vendor_id, product_name, description, created_at
		FROM campaigns ORDER BY created_at DESC, id DESC`)
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID int64) ([]*Campaign, error) {
	return r.query(ctx, `
		SELECT id, vendor_id, product_name, description, created_at
		FROM campaigns WHERE vendor_id = $1 ORDER BY created_at DESC, id DESC`, vendorID)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	campaigns := []*Campaign{}
	for rows.Next() {
		c := &Campaign{}
		if err := rows.Scan(&c.ID, &c.VendorID, &c.ProductName, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
