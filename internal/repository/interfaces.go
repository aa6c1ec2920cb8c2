package repository

import (
	"context"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type VersionRepo interface {
	Create(ctx context.Context, v *domain.Version) error
	GetByID(ctx context.Context, id string) (*domain.Version, error)
	GetByName(ctx context.Context, projectID, name string) (*domain.Version, error)
	// ListByProject returns versions in store order: creation time, then id.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error)
	// VersionsWithEffectiveDate returns the dated versions of a project
	// ordered by effective date.
	VersionsWithEffectiveDate(ctx context.Context, projectID string) ([]*domain.Version, error)
}

type IssueRepo interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id string) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error)
	ListByProjectAndTrackers(ctx context.Context, projectID string, trackers []string) ([]*domain.Issue, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Issue, error)
	ListDescendants(ctx context.Context, rootID string) ([]*domain.Issue, error)
	UpdateParent(ctx context.Context, id string, parentID *string) error
	WriteVersionAndDates(ctx context.Context, i *domain.Issue) error
	WriteVersion(ctx context.Context, i *domain.Issue) error
	DatesAreChildDerived(ctx context.Context, i *domain.Issue) (bool, error)
	Delete(ctx context.Context, id string) error
}

type SettingRepo interface {
	SetProject(ctx context.Context, projectID, key, value string) error
	SetGlobal(ctx context.Context, key, value string) error
	ProjectOverride(ctx context.Context, projectID, key string) (string, bool, error)
	GlobalOverride(ctx context.Context, key string) (string, bool, error)
}
