package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
)

// SQLSettingRepo stores project-scoped and global key/value settings.
type SQLSettingRepo struct {
	db db.DBTX
}

// NewSQLSettingRepo creates a new SQLSettingRepo.
func NewSQLSettingRepo(q db.DBTX) *SQLSettingRepo {
	return &SQLSettingRepo{db: q}
}

func (r *SQLSettingRepo) SetProject(ctx context.Context, projectID, key, value string) error {
	query := `INSERT INTO project_settings (project_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT (project_id, key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, projectID, key, value); err != nil {
		return fmt.Errorf("upserting project setting %s: %w", key, err)
	}
	return nil
}

func (r *SQLSettingRepo) SetGlobal(ctx context.Context, key, value string) error {
	query := `INSERT INTO global_settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting global setting %s: %w", key, err)
	}
	return nil
}

// ProjectOverride returns the project's value for key and whether one is stored.
func (r *SQLSettingRepo) ProjectOverride(ctx context.Context, projectID, key string) (string, bool, error) {
	query := `SELECT value FROM project_settings WHERE project_id = ? AND key = ?`
	return scanSetting(r.db.QueryRowContext(ctx, query, projectID, key), key)
}

// GlobalOverride returns the global value for key and whether one is stored.
func (r *SQLSettingRepo) GlobalOverride(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM global_settings WHERE key = ?`
	return scanSetting(r.db.QueryRowContext(ctx, query, key), key)
}

func scanSetting(row *sql.Row, key string) (string, bool, error) {
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}
