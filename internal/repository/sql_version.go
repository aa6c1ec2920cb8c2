package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

const versionColumns = `id, project_id, name, effective_date, created_at, updated_at`

// SQLVersionRepo implements VersionRepo.
type SQLVersionRepo struct {
	db db.DBTX
}

// NewSQLVersionRepo creates a new SQLVersionRepo.
func NewSQLVersionRepo(q db.DBTX) *SQLVersionRepo {
	return &SQLVersionRepo{db: q}
}

func (r *SQLVersionRepo) Create(ctx context.Context, v *domain.Version) error {
	query := `INSERT INTO versions (` + versionColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.ProjectID,
		v.Name,
		nullableTimeToString(v.EffectiveDate, dateLayout),
		formatTimestamp(v.CreatedAt),
		formatTimestamp(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

func (r *SQLVersionRepo) GetByID(ctx context.Context, id string) (*domain.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions WHERE id = ?`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLVersionRepo) GetByName(ctx context.Context, projectID, name string) (*domain.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions WHERE project_id = ? AND name = ?`
	return r.scanVersion(r.db.QueryRowContext(ctx, query, projectID, name))
}

func (r *SQLVersionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions WHERE project_id = ? ORDER BY created_at, id`
	return r.queryVersions(ctx, query, projectID)
}

func (r *SQLVersionRepo) VersionsWithEffectiveDate(ctx context.Context, projectID string) ([]*domain.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions
		WHERE project_id = ? AND effective_date IS NOT NULL
		ORDER BY effective_date, created_at, id`
	return r.queryVersions(ctx, query, projectID)
}

func (r *SQLVersionRepo) queryVersions(ctx context.Context, query string, args ...any) ([]*domain.Version, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	versions := []*domain.Version{}
	for rows.Next() {
		v, err := r.scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}
	return versions, nil
}

func (r *SQLVersionRepo) scanVersion(row rowScanner) (*domain.Version, error) {
	var v domain.Version
	var effectiveStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&v.ID, &v.ProjectID, &v.Name, &effectiveStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("version: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning version: %w", err)
	}

	v.EffectiveDate = parseNullableTime(effectiveStr, dateLayout)

	var parseErr error
	v.CreatedAt, parseErr = parseTimestamp(createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	v.UpdatedAt, parseErr = parseTimestamp(updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &v, nil
}
