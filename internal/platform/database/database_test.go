package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/influencehub/marketplace-api/internal/platform/database"
	"github.com/influencehub/marketplace-api/internal/platform/database/databasetest"
)

func TestForUpdate(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", database.Postgres.ForUpdate())
	assert.Equal(t, "", database.SQLite.ForUpdate())
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := databasetest.Open(t)

	require.NoError(t, database.Migrate(db, database.SQLite))

	for _, table := range []string{"users", "campaigns", "chats", "messages", "influencer_profiles", "products", "bills", "bill_lines"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestStockCannotGoNegative(t *testing.T) {
	db := databasetest.Open(t)
	vendorID := databasetest.InsertID(t, db, `INSERT INTO users (email, role) VALUES ('v@example.com', 'vendor')`)

	_, err := db.Exec(`INSERT INTO products (vendor_id, product_name, cost_price, quantity_available) VALUES ($1, 'Mug', 10, -1)`, vendorID)
	assert.Error(t, err)
}
