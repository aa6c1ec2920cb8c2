// Package propagation cascades version assignments and their derived
// schedule dates through the issue tree inside one transaction.
package propagation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
)

// Engine runs version propagation against the store. All writes of one call
// share a single UnitOfWork transaction.
type Engine struct {
	uow    db.UnitOfWork
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(uow db.UnitOfWork, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{uow: uow, logger: logger}
}

// assignment is the version being applied plus the dates it implies.
type assignment struct {
	versionID *string
	dates     ScheduleDates
	hasDates  bool
}

// txStores are the repositories bound to one transaction.
type txStores struct {
	issues   *repository.SQLIssueRepo
	versions *repository.SQLVersionRepo
}

func newTxStores(tx db.DBTX) txStores {
	return txStores{
		issues:   repository.NewSQLIssueRepo(tx),
		versions: repository.NewSQLVersionRepo(tx),
	}
}

// PropagateVersionAndDates assigns versionID (nil clears it) to the issue and
// writes the derived dates. With updateParent, every sibling is then written
// the same way, followed by the parent; a parent whose dates the store derives
// from its children keeps them. Any failure rolls back every write and is
// returned wrapped around the store's error.
func (e *Engine) PropagateVersionAndDates(ctx context.Context, issueID string, versionID *string, updateParent bool) (*domain.ChangeReport, error) {
	var result cascadeResult
	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		result, err = e.propagate(ctx, newTxStores(tx), issueID, versionID, updateParent)
		return err
	})
	if err != nil {
		return nil, err
	}

	report := result.report()
	e.logger.Debug("version propagated",
		"issue_id", issueID,
		"version_id", domain.NormalizeVersionID(versionID),
		"update_parent", updateParent,
		"changed", report.ChangedCount(),
	)
	return report, nil
}

// PropagateVersionToDescendants force-writes versionID onto every transitive
// descendant of rootID, leaving dates and the root itself untouched. It
// returns the number of descendants visited.
func (e *Engine) PropagateVersionToDescendants(ctx context.Context, rootID string, versionID *string) (int, error) {
	var visited int
	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := newTxStores(tx)
		if _, err := stores.issues.GetByID(ctx, rootID); err != nil {
			return fmt.Errorf("loading root %s: %w", rootID, err)
		}
		var err error
		visited, err = e.cascade(ctx, stores, rootID, versionID)
		return err
	})
	if err != nil {
		return 0, err
	}
	e.logger.Debug("version cascaded to descendants",
		"root_id", rootID,
		"version_id", domain.NormalizeVersionID(versionID),
		"visited", visited,
	)
	return visited, nil
}

// MoveSubtree assigns versionID and its derived dates to rootID and
// force-writes the version onto every descendant, all in one transaction.
func (e *Engine) MoveSubtree(ctx context.Context, rootID string, versionID *string) (*domain.ChangeReport, int, error) {
	var (
		result  cascadeResult
		visited int
	)
	err := e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stores := newTxStores(tx)
		var err error
		if result, err = e.propagate(ctx, stores, rootID, versionID, false); err != nil {
			return err
		}
		visited, err = e.cascade(ctx, stores, rootID, versionID)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return result.report(), visited, nil
}

func (e *Engine) propagate(ctx context.Context, s txStores, issueID string, versionID *string, updateParent bool) (cascadeResult, error) {
	// The target is re-read inside the transaction before anything is written.
	target, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return cascadeResult{}, fmt.Errorf("reloading issue %s: %w", issueID, err)
	}

	a, err := e.resolveAssignment(ctx, s, target.ProjectID, versionID)
	if err != nil {
		return cascadeResult{}, err
	}

	var result cascadeResult
	if result.target, err = e.write(ctx, s, target, a, false); err != nil {
		return cascadeResult{}, err
	}

	if !updateParent || !target.HasParent() {
		return result, nil
	}

	parentID := *target.ParentID
	siblings, err := s.issues.ListChildren(ctx, parentID)
	if err != nil {
		return cascadeResult{}, fmt.Errorf("listing siblings of %s: %w", issueID, err)
	}
	for _, sib := range siblings {
		if sib.ID == target.ID {
			continue
		}
		r, err := e.write(ctx, s, sib, a, false)
		if err != nil {
			return cascadeResult{}, err
		}
		result.siblings = append(result.siblings, r)
	}

	// Siblings are written first so stores that derive a parent's schedule
	// from its children see the new values.
	parent, err := s.issues.GetByID(ctx, parentID)
	if err != nil {
		return cascadeResult{}, fmt.Errorf("reloading parent %s: %w", parentID, err)
	}
	childDerived, err := s.issues.DatesAreChildDerived(ctx, parent)
	if err != nil {
		return cascadeResult{}, fmt.Errorf("checking date mode of parent %s: %w", parentID, err)
	}
	pr, err := e.write(ctx, s, parent, a, childDerived)
	if err != nil {
		return cascadeResult{}, err
	}
	result.parent = &pr
	return result, nil
}

func (e *Engine) cascade(ctx context.Context, s txStores, rootID string, versionID *string) (int, error) {
	descendants, err := s.issues.ListDescendants(ctx, rootID)
	if err != nil {
		return 0, fmt.Errorf("listing descendants of %s: %w", rootID, err)
	}
	for _, d := range descendants {
		d.VersionID = copyVersionID(versionID)
		if err := s.issues.WriteVersion(ctx, d); err != nil {
			return 0, fmt.Errorf("cascading version to %s: %w", d.ID, err)
		}
	}
	return len(descendants), nil
}

// resolveAssignment loads the version and the project's timeline. A cleared
// or undated version yields an assignment without dates.
func (e *Engine) resolveAssignment(ctx context.Context, s txStores, projectID string, versionID *string) (assignment, error) {
	id := domain.NormalizeVersionID(versionID)
	if id == "" {
		return assignment{}, nil
	}
	version, err := s.versions.GetByID(ctx, id)
	if err != nil {
		return assignment{}, fmt.Errorf("loading version %s: %w", id, err)
	}
	timeline, err := s.versions.VersionsWithEffectiveDate(ctx, projectID)
	if err != nil {
		return assignment{}, fmt.Errorf("loading version timeline: %w", err)
	}
	dates, ok := DeriveDates(version, timeline)
	return assignment{versionID: &id, dates: dates, hasDates: ok}, nil
}

// write applies a to one issue and reports whether its version changed.
// keepDates leaves the stored schedule alone while still writing the version.
func (e *Engine) write(ctx context.Context, s txStores, current *domain.Issue, a assignment, keepDates bool) (nodeResult, error) {
	updated := *current
	updated.VersionID = copyVersionID(a.versionID)
	if a.hasDates && !keepDates {
		start, due := a.dates.Start, a.dates.Due
		updated.StartDate, updated.DueDate = &start, &due
	}
	if err := s.issues.WriteVersionAndDates(ctx, &updated); err != nil {
		return nodeResult{}, fmt.Errorf("writing issue %s: %w", current.ID, err)
	}
	return nodeResult{
		issue:   &updated,
		changed: !domain.SameVersion(current.VersionID, updated.VersionID),
	}, nil
}

func copyVersionID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
