// Package databasetest provides migrated databases for tests: a private
// in-memory SQLite per test, and an opt-in shared Postgres.
package databasetest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/influencehub/marketplace-api/internal/config"
	"github.com/influencehub/marketplace-api/internal/platform/database"
)

// Open returns a fresh, fully migrated database private to the calling test.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", name)

	db, dialect, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    dsn,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db, dialect); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// PostgresURLEnv names the variable pointing tests at a disposable Postgres.
const PostgresURLEnv = "TEST_DATABASE_URL"

// OpenPostgres returns a migrated Postgres pool, skipping the test unless
// TEST_DATABASE_URL is set. The database is shared, so callers seed rows
// under their own users.
func OpenPostgres(t testing.TB) *sql.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	db, dialect, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		URL:          url,
		MaxOpenConns: 20,
		MaxIdleConns: 20,
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db, dialect); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	return db
}

// Exec runs a seed statement and fails the test on error.
func Exec(t testing.TB, db *sql.DB, query string, args ...any) sql.Result {
	t.Helper()
	res, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
	return res
}

// InsertID runs an INSERT and returns the generated row id.
func InsertID(t testing.TB, db *sql.DB, query string, args ...any) int64 {
	t.Helper()
	id, err := Exec(t, db, query, args...).LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}
