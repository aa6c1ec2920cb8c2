package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "versions", "issues", "project_settings", "global_settings"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_versions_project",
		"idx_issues_project",
		"idx_issues_parent",
		"idx_issues_version",
		"idx_issues_created",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_DeletingParentCascadesToChildren(t *testing.T) {
	db := openTestDB(t)

	const ts = "2025-01-01T00:00:00.000000000Z"
	_, err := db.Exec(`INSERT INTO projects (id, identifier, name, created_at, updated_at) VALUES ('p1','demo','Demo',?,?)`, ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO issues (id, project_id, tracker, subject, created_at, updated_at) VALUES ('e1','p1','Epic','E',?,?)`, ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO issues (id, project_id, parent_id, tracker, subject, created_at, updated_at) VALUES ('f1','p1','e1','Feature','F',?,?)`, ts, ts)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM issues WHERE id = 'e1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM issues`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_DeletingVersionClearsAssignment(t *testing.T) {
	db := openTestDB(t)

	const ts = "2025-01-01T00:00:00.000000000Z"
	_, err := db.Exec(`INSERT INTO projects (id, identifier, name, created_at, updated_at) VALUES ('p1','demo','Demo',?,?)`, ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO versions (id, project_id, name, effective_date, created_at, updated_at) VALUES ('v1','p1','v1','2025-10-01',?,?)`, ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO issues (id, project_id, tracker, subject, version_id, created_at, updated_at) VALUES ('e1','p1','Epic','E','v1',?,?)`, ts, ts)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM versions WHERE id = 'v1'`)
	require.NoError(t, err)

	var versionID sql.NullString
	require.NoError(t, db.QueryRow(`SELECT version_id FROM issues WHERE id = 'e1'`).Scan(&versionID))
	assert.False(t, versionID.Valid)
}

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open(Dialect("oracle"), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}
