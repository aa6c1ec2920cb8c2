package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

var (
	testIdentifierCounter atomic.Int64
	testClockTicks        atomic.Int64
)

// testEpoch anchors fixture timestamps; every fixture gets a strictly later
// CreatedAt than the one built before it, so creation order is deterministic.
var testEpoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func nextTimestamp() time.Time {
	return testEpoch.Add(time.Duration(testClockTicks.Add(1)) * time.Millisecond)
}

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad date %q: %v", s, err))
	}
	return d
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Project options
type ProjectOption func(*domain.Project)

func WithIdentifier(id string) ProjectOption {
	return func(p *domain.Project) {
		p.Identifier = id
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := nextTimestamp()
	p := &domain.Project{
		ID:         uuid.New().String(),
		Identifier: fmt.Sprintf("proj-%d", testIdentifierCounter.Add(1)),
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Version options
type VersionOption func(*domain.Version)

func WithEffectiveDate(d time.Time) VersionOption {
	return func(v *domain.Version) {
		v.EffectiveDate = &d
	}
}

func WithVersionCreatedAt(t time.Time) VersionOption {
	return func(v *domain.Version) {
		v.CreatedAt = t
		v.UpdatedAt = t
	}
}

func NewTestVersion(projectID, name string, opts ...VersionOption) *domain.Version {
	now := nextTimestamp()
	v := &domain.Version{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Issue options
type IssueOption func(*domain.Issue)

func WithParent(id string) IssueOption {
	return func(i *domain.Issue) {
		i.ParentID = &id
	}
}

func WithVersion(id string) IssueOption {
	return func(i *domain.Issue) {
		i.VersionID = &id
	}
}

func WithDates(start, due time.Time) IssueOption {
	return func(i *domain.Issue) {
		i.StartDate = &start
		i.DueDate = &due
	}
}

func WithCreatedAt(t time.Time) IssueOption {
	return func(i *domain.Issue) {
		i.CreatedAt = t
		i.UpdatedAt = t
	}
}

func WithIssueID(id string) IssueOption {
	return func(i *domain.Issue) {
		i.ID = id
	}
}

// NewTestIssue builds an issue whose tracker is the default tracker name of
// role.
func NewTestIssue(projectID string, role domain.Role, subject string, opts ...IssueOption) *domain.Issue {
	return NewTestIssueWithTracker(projectID, role.DefaultTracker(), subject, opts...)
}

func NewTestIssueWithTracker(projectID, tracker, subject string, opts ...IssueOption) *domain.Issue {
	now := nextTimestamp()
	i := &domain.Issue{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Tracker:   tracker,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
