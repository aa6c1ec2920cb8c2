package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/hierarchy"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
	"github.com/google/uuid"
)

type issueService struct {
	issues repository.IssueRepo
	roles  roles.Resolver
	uow    db.UnitOfWork
}

func NewIssueService(issues repository.IssueRepo, resolver roles.Resolver, uow db.UnitOfWork) IssueService {
	return &issueService{issues: issues, roles: resolver, uow: uow}
}

// Create validates the tracker and the parent against the project's role
// bindings and inserts the issue. The parent is read in the same transaction
// as the insert.
func (s *issueService) Create(ctx context.Context, i *domain.Issue) error {
	i.Subject = strings.TrimSpace(i.Subject)
	if i.Subject == "" {
		return fmt.Errorf("issue subject is required")
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now

	rules := hierarchy.NewRules(s.roles.Resolve(ctx, i.ProjectID))
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLIssueRepo(tx)

		parent, err := loadParent(ctx, txIssues, i.ParentID)
		if err != nil {
			return err
		}
		if err := rules.ValidateParent(i, parent); err != nil {
			return err
		}
		i.ParentID = nil
		if parent != nil {
			i.ParentID = &parent.ID
		}
		return txIssues.Create(ctx, i)
	})
}

func (s *issueService) GetByID(ctx context.Context, id string) (*domain.Issue, error) {
	return s.issues.GetByID(ctx, id)
}

func (s *issueService) ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error) {
	return s.issues.ListByProject(ctx, projectID)
}

func (s *issueService) ListChildren(ctx context.Context, parentID string) ([]*domain.Issue, error) {
	return s.issues.ListChildren(ctx, parentID)
}

// SetParent moves an issue under a new parent, or detaches it when parentID
// is nil. Levels strictly increase from parent to child, so a legal move can
// never close a cycle.
func (s *issueService) SetParent(ctx context.Context, id string, parentID *string) error {
	current, err := s.issues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Role bindings are resolved before the transaction opens; the registry
	// reads through its own connection.
	rules := hierarchy.NewRules(s.roles.Resolve(ctx, current.ProjectID))

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txIssues := repository.NewSQLIssueRepo(tx)

		issue, err := txIssues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		parent, err := loadParent(ctx, txIssues, parentID)
		if err != nil {
			return err
		}
		if err := rules.ValidateParent(issue, parent); err != nil {
			return err
		}
		if parent == nil {
			return txIssues.UpdateParent(ctx, id, nil)
		}
		return txIssues.UpdateParent(ctx, id, &parent.ID)
	})
}

func (s *issueService) Delete(ctx context.Context, id string) error {
	return s.issues.Delete(ctx, id)
}

func loadParent(ctx context.Context, issues repository.IssueRepo, parentID *string) (*domain.Issue, error) {
	if parentID == nil || strings.TrimSpace(*parentID) == "" {
		return nil, nil
	}
	parent, err := issues.GetByID(ctx, strings.TrimSpace(*parentID))
	if err != nil {
		return nil, fmt.Errorf("loading parent: %w", err)
	}
	return parent, nil
}
