package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/influencehub/marketplace-api/internal/config"
)

// Dialect captures the SQL differences between the supported engines.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ForUpdate returns the row-lock suffix for SELECT statements. SQLite has no
// row locks; it serialises writers on the single pooled connection instead.
func (d Dialect) ForUpdate() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}

// Open opens and pings the connection pool described by cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect := Postgres
	driverName := "postgres"
	if cfg.Driver == config.DriverSQLite {
		dialect = SQLite
		driverName = "sqlite"
	}

	db, err := sql.Open(driverName, cfg.URL)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", driverName, err)
	}

	if dialect == SQLite {
		// One connection keeps in-memory databases alive and writers ordered.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", driverName, err)
	}
	return db, dialect, nil
}

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repositories can run
// inside or outside a caller-owned transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
