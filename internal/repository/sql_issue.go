package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// issueColumns is the canonical SELECT column list for issues.
const issueColumns = `id, project_id, parent_id, tracker, subject, version_id,
		start_date, due_date, created_at, updated_at`

// issueOrder is the stable issue order: creation time, ties broken by id.
const issueOrder = ` ORDER BY created_at, id`

// SQLIssueRepo implements IssueRepo.
type SQLIssueRepo struct {
	db db.DBTX
}

// NewSQLIssueRepo creates a new SQLIssueRepo.
func NewSQLIssueRepo(q db.DBTX) *SQLIssueRepo {
	return &SQLIssueRepo{db: q}
}

func (r *SQLIssueRepo) Create(ctx context.Context, i *domain.Issue) error {
	if err := r.validateSchedule(ctx, i); err != nil {
		return err
	}
	query := `INSERT INTO issues (` + issueColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.ProjectID,
		nullableString(i.ParentID),
		i.Tracker,
		i.Subject,
		nullableString(i.VersionID),
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.DueDate, dateLayout),
		formatTimestamp(i.CreatedAt),
		formatTimestamp(i.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

func (r *SQLIssueRepo) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = ?`
	return r.scanIssue(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLIssueRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE project_id = ?` + issueOrder
	return r.queryIssues(ctx, query, projectID)
}

// ListByProjectAndTrackers returns the project's issues whose tracker is one
// of trackers. An empty tracker list matches nothing.
func (r *SQLIssueRepo) ListByProjectAndTrackers(ctx context.Context, projectID string, trackers []string) ([]*domain.Issue, error) {
	if len(trackers) == 0 {
		return []*domain.Issue{}, nil
	}
	args := make([]any, 0, len(trackers)+1)
	args = append(args, projectID)
	for _, t := range trackers {
		args = append(args, t)
	}
	query := `SELECT ` + issueColumns + ` FROM issues
		WHERE project_id = ? AND tracker IN (` + placeholders(len(trackers)) + `)` + issueOrder
	return r.queryIssues(ctx, query, args...)
}

// ListChildren returns the direct children of parentID.
func (r *SQLIssueRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE parent_id = ?` + issueOrder
	return r.queryIssues(ctx, query, parentID)
}

// ListDescendants returns every transitive descendant of rootID, excluding
// the root itself. UNION drops revisited rows, so a corrupted cyclic parent
// chain still terminates.
func (r *SQLIssueRepo) ListDescendants(ctx context.Context, rootID string) ([]*domain.Issue, error) {
	query := `WITH RECURSIVE subtree(id) AS (
			SELECT id FROM issues WHERE parent_id = ?
			UNION
			SELECT c.id FROM issues c JOIN subtree s ON c.parent_id = s.id
		)
		SELECT ` + issueColumns + ` FROM issues
		WHERE id IN (SELECT id FROM subtree) AND id <> ?` + issueOrder
	return r.queryIssues(ctx, query, rootID, rootID)
}

func (r *SQLIssueRepo) UpdateParent(ctx context.Context, id string, parentID *string) error {
	query := `UPDATE issues SET parent_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableString(parentID), formatTimestamp(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("updating issue parent: %w", err)
	}
	return requireAffected(res, id)
}

// WriteVersionAndDates persists the issue's version and schedule in a single
// statement after validating them.
func (r *SQLIssueRepo) WriteVersionAndDates(ctx context.Context, i *domain.Issue) error {
	if err := r.validateSchedule(ctx, i); err != nil {
		return err
	}
	i.UpdatedAt = nowUTC()
	query := `UPDATE issues SET version_id = ?, start_date = ?, due_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(i.VersionID),
		nullableTimeToString(i.StartDate, dateLayout),
		nullableTimeToString(i.DueDate, dateLayout),
		formatTimestamp(i.UpdatedAt),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("writing version and dates for issue %s: %w", i.ID, err)
	}
	return requireAffected(res, i.ID)
}

// WriteVersion persists only the issue's version; stored dates are left alone.
func (r *SQLIssueRepo) WriteVersion(ctx context.Context, i *domain.Issue) error {
	if err := r.validateVersionScope(ctx, i); err != nil {
		return err
	}
	i.UpdatedAt = nowUTC()
	query := `UPDATE issues SET version_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableString(i.VersionID), formatTimestamp(i.UpdatedAt), i.ID)
	if err != nil {
		return fmt.Errorf("writing version for issue %s: %w", i.ID, err)
	}
	return requireAffected(res, i.ID)
}

// DatesAreChildDerived reports whether the store computes the issue's dates
// from its children: the issue has at least one child and the
// parent_issue_dates setting (project, then global, default derived) is not
// "independent".
func (r *SQLIssueRepo) DatesAreChildDerived(ctx context.Context, i *domain.Issue) (bool, error) {
	var hasChild int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE parent_id = ?`, i.ID).Scan(&hasChild)
	if err != nil {
		return false, fmt.Errorf("counting children of issue %s: %w", i.ID, err)
	}
	if hasChild == 0 {
		return false, nil
	}

	settings := NewSQLSettingRepo(r.db)
	project, _, err := settings.ProjectOverride(ctx, i.ProjectID, domain.SettingParentIssueDates)
	if err != nil {
		return false, err
	}
	global, _, err := settings.GlobalOverride(ctx, domain.SettingParentIssueDates)
	if err != nil {
		return false, err
	}
	mode := domain.CoalesceStr(project, global, string(domain.ParentDatesDerived))
	return domain.ParseParentDatesMode(strings.TrimSpace(mode)) == domain.ParentDatesDerived, nil
}

func (r *SQLIssueRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting issue: %w", err)
	}
	return nil
}

func (r *SQLIssueRepo) validateSchedule(ctx context.Context, i *domain.Issue) error {
	if err := r.validateVersionScope(ctx, i); err != nil {
		return err
	}
	if i.StartDate != nil && i.DueDate != nil && i.DueDate.Before(*i.StartDate) {
		return &ValidationError{
			IssueID: i.ID,
			Field:   "due_date",
			Message: fmt.Sprintf("due date %s precedes start date %s",
				i.DueDate.Format(dateLayout), i.StartDate.Format(dateLayout)),
		}
	}
	return nil
}

// validateVersionScope rejects versions that are missing or belong to a
// different project than the issue.
func (r *SQLIssueRepo) validateVersionScope(ctx context.Context, i *domain.Issue) error {
	versionID := domain.NormalizeVersionID(i.VersionID)
	if versionID == "" {
		return nil
	}
	var projectID string
	err := r.db.QueryRowContext(ctx, `SELECT project_id FROM versions WHERE id = ?`, versionID).Scan(&projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return &ValidationError{IssueID: i.ID, Field: "version_id", Message: fmt.Sprintf("version %s does not exist", versionID)}
	}
	if err != nil {
		return fmt.Errorf("checking version %s: %w", versionID, err)
	}
	if projectID != i.ProjectID {
		return &ValidationError{IssueID: i.ID, Field: "version_id", Message: fmt.Sprintf("version %s belongs to another project", versionID)}
	}
	return nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLIssueRepo) queryIssues(ctx context.Context, query string, args ...any) ([]*domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	issues := []*domain.Issue{}
	for rows.Next() {
		i, err := r.scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

// scanIssue scans a single issue and parses its stored dates.
func (r *SQLIssueRepo) scanIssue(row rowScanner) (*domain.Issue, error) {
	var i domain.Issue
	var parentID, versionID, startStr, dueStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&i.ID, &i.ProjectID, &parentID, &i.Tracker, &i.Subject, &versionID,
		&startStr, &dueStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("issue: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning issue: %w", err)
	}

	if parentID.Valid {
		i.ParentID = &parentID.String
	}
	if versionID.Valid {
		i.VersionID = &versionID.String
	}
	i.StartDate = parseNullableTime(startStr, dateLayout)
	i.DueDate = parseNullableTime(dueStr, dateLayout)

	var parseErr error
	i.CreatedAt, parseErr = parseTimestamp(createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	i.UpdatedAt, parseErr = parseTimestamp(updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &i, nil
}
