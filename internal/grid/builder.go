// Package grid materializes the Epic × Feature × Version index of user
// stories rendered by the release grid.
package grid

import (
	"context"
	"fmt"
	"sort"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

// IssueLister loads the issues of a project bound to the given trackers.
type IssueLister interface {
	ListByProjectAndTrackers(ctx context.Context, projectID string, trackers []string) ([]*domain.Issue, error)
}

// VersionLister loads a project's versions in store order.
type VersionLister interface {
	ListByProject(ctx context.Context, projectID string) ([]*domain.Version, error)
}

// Builder builds grid indexes. It holds no state between calls.
type Builder struct {
	issues   IssueLister
	versions VersionLister
	roles    roles.Resolver
}

func NewBuilder(issues IssueLister, versions VersionLister, resolver roles.Resolver) *Builder {
	return &Builder{issues: issues, versions: versions, roles: resolver}
}

// Build reads the project's tree and returns a fresh index. Only store I/O
// fails; inconsistent data degrades to the "none" bucket or is left out.
func (b *Builder) Build(ctx context.Context, projectID string) (*domain.GridIndex, error) {
	roleMap := b.roles.Resolve(ctx, projectID)

	versions, err := b.versions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	issues, err := b.issues.ListByProjectAndTrackers(ctx, projectID,
		roleMap.Trackers(domain.RoleEpic, domain.RoleFeature, domain.RoleUserStory))
	if err != nil {
		return nil, fmt.Errorf("loading issues: %w", err)
	}
	return Assemble(roleMap, issues, versions), nil
}

// Assemble builds the index from already loaded rows. It is a pure function
// of its inputs.
func Assemble(roleMap roles.RoleMap, issues []*domain.Issue, versions []*domain.Version) *domain.GridIndex {
	g := domain.NewGridIndex()

	known := make(map[string]bool, len(versions))
	for _, v := range versions {
		if known[v.ID] {
			continue
		}
		known[v.ID] = true
		g.VersionOrder = append(g.VersionOrder, v.ID)
	}
	g.VersionOrder = append(g.VersionOrder, domain.NoneVersion)

	byRole := map[domain.Role][]*domain.Issue{}
	for _, i := range issues {
		if role, ok := roleMap.RoleOf(i.Tracker); ok {
			byRole[role] = append(byRole[role], i)
		}
	}

	epics := sortedByCreation(byRole[domain.RoleEpic])
	for _, e := range epics {
		g.EpicOrder = append(g.EpicOrder, e.ID)
		g.FeatureOrderByEpic[e.ID] = []string{}
	}

	// Features are indexed only under an epic; remember each one's epic.
	featureEpic := map[string]string{}
	for _, f := range sortedByCreation(byRole[domain.RoleFeature]) {
		if !f.HasParent() {
			continue
		}
		epicID := *f.ParentID
		order, ok := g.FeatureOrderByEpic[epicID]
		if !ok {
			continue
		}
		g.FeatureOrderByEpic[epicID] = append(order, f.ID)
		featureEpic[f.ID] = epicID
		for _, v := range g.VersionOrder {
			g.Index[domain.CellKey(epicID, f.ID, v)] = []string{}
		}
	}

	for _, s := range sortedByCreation(byRole[domain.RoleUserStory]) {
		if !s.HasParent() {
			continue
		}
		epicID, ok := featureEpic[*s.ParentID]
		if !ok {
			continue
		}
		bucket := s.VersionKey()
		if !known[bucket] {
			bucket = domain.NoneVersion
		}
		key := domain.CellKey(epicID, *s.ParentID, bucket)
		g.Index[key] = append(g.Index[key], s.ID)
	}
	return g
}

func sortedByCreation(issues []*domain.Issue) []*domain.Issue {
	out := append([]*domain.Issue{}, issues...)
	sort.SliceStable(out, func(a, b int) bool {
		return domain.CreatedBefore(out[a], out[b])
	})
	return out
}
