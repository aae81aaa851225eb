// Package testutil provides shared test fixtures.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/danielwaldman/cadence/internal/store"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// NewTestStore creates a SQLite-backed item store over a fresh test database.
func NewTestStore(t *testing.T) *store.SQLiteItemStore {
	t.Helper()
	return store.NewSQLiteItemStore(NewTestDB(t))
}
