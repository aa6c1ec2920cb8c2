package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent and
// portable across SQLite and Postgres, so Migrate can run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text so lexical order matches
// chronological order; dates use YYYY-MM-DD.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		identifier TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS versions (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		effective_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (project_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS issues (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id TEXT REFERENCES issues(id) ON DELETE CASCADE,
		tracker TEXT NOT NULL,
		subject TEXT NOT NULL,
		version_id TEXT REFERENCES versions(id) ON DELETE SET NULL,
		start_date TEXT,
		due_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_settings (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (project_id, key)
	)`,

	`CREATE TABLE IF NOT EXISTS global_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_versions_project ON versions(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_parent ON issues(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_version ON issues(version_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_created ON issues(project_id, created_at, id)`,
}
