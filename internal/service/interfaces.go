package service

import (
	"context"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/importer"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts either a project identifier or an id.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type VersionService interface {
	Create(ctx context.Context, v *domain.Version) error
	GetByID(ctx context.Context, id string) (*domain.Version, error)
	// Resolve accepts either a version name or an id within the project.
	Resolve(ctx context.Context, projectID, ref string) (*domain.Version, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error)
}

type IssueService interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Issue, error)
	SetParent(ctx context.Context, id string, parentID *string) error
	Delete(ctx context.Context, id string) error
}

// SettingSource tells where an effective setting value came from.
type SettingSource string

const (
	SourceProject SettingSource = "project"
	SourceGlobal  SettingSource = "global"
	SourceDefault SettingSource = "default"
)

// SettingValue is an effective setting and its origin.
type SettingValue struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

type SettingService interface {
	// Set writes a project override, or a global one when projectID is empty.
	Set(ctx context.Context, projectID, key, value string) error
	Get(ctx context.Context, projectID, key string) (*SettingValue, error)
	List(ctx context.Context, projectID string) ([]*SettingValue, error)
	Roles(ctx context.Context, projectID string) roles.RoleMap
}

// CascadeResult is the outcome of moving a subtree to a version.
type CascadeResult struct {
	// Root is set when the root itself was written.
	Root        *domain.ChangeReport `json:"root,omitempty"`
	Descendants int                  `json:"descendants"`
}

type PlanningService interface {
	Propagate(ctx context.Context, issueID string, versionID *string, updateParent bool) (*domain.ChangeReport, error)
	Cascade(ctx context.Context, rootID string, versionID *string, includeRoot bool) (*CascadeResult, error)
	Grid(ctx context.Context, projectID string) (*domain.GridIndex, error)
	Orphans(ctx context.Context, projectID string) ([]*domain.Issue, error)
	Incomplete(ctx context.Context, projectID string) ([]domain.IncompleteSubtree, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Project      *domain.Project
	SettingCount int
	VersionCount int
	IssueCount   int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFile(ctx context.Context, plan *importer.PlanFile) (*ImportResult, error)
}
