package testutil

import (
	"database/sql"
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite store that lives for the test.
// It holds a single connection, so a caller must not read through it while
// one of its transactions is open.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(db.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW returns the production UnitOfWork over a test store.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database, db.DialectSQLite)
}
