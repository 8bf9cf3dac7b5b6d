package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/influencehub/marketplace-api/internal/platform/database"
)

type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a new SQL user repository.
func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateIfAbsent(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, role, tokens, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING`,
		u.Email, u.Role, u.Tokens, u.CreatedAt)
	return err
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, email, role, tokens, created_at
		FROM users
		WHERE email = $1`, email))
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, email, role, tokens, created_at
		FROM users
		WHERE id = $1`, id))
}

func (r *postgresRepository) DeductTokens(ctx context.Context, id int64, amount int) (int, error) {
	var balance int
	err := r.db.QueryRowContext(ctx, `
		UPDATE users SET tokens = tokens - $1
		WHERE id = $2 AND tokens >= $1
		RETURNING tokens`, amount, id).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	// No row updated: either the user is missing or the balance is too low.
	if _, err := r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return 0, ErrInsufficientTokens
}

func (r *postgresRepository) scan(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.Email, &u.Role, &u.Tokens, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
