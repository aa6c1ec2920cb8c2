package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

const projectColumns = `id, identifier, name, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLProjectRepo implements ProjectRepo.
type SQLProjectRepo struct {
	db db.DBTX
}

// NewSQLProjectRepo creates a new SQLProjectRepo.
func NewSQLProjectRepo(q db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{db: q}
}

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Identifier,
		p.Name,
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLProjectRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE identifier = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, identifier))
}

func (r *SQLProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := r.scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLProjectRepo) scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Identifier, &p.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	var parseErr error
	p.CreatedAt, parseErr = parseTimestamp(createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = parseTimestamp(updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
