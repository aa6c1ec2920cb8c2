package hierarchy

import (
	"context"
	"fmt"
	"sort"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// IssueLister is the read surface the tree scans need.
type IssueLister interface {
	ListByProject(ctx context.Context, projectID string) ([]*domain.Issue, error)
}

// FindOrphans returns every issue with a known non-root role that has no
// parent, ordered by creation time. Issues with unbound trackers are skipped.
func (r *Rules) FindOrphans(ctx context.Context, store IssueLister, projectID string) ([]*domain.Issue, error) {
	issues, err := store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing issues for orphan scan: %w", err)
	}

	orphans := []*domain.Issue{}
	for _, i := range issues {
		role, ok := r.RoleOf(i)
		if !ok || role == domain.RoleEpic {
			continue
		}
		if !i.HasParent() {
			orphans = append(orphans, i)
		}
	}
	sort.SliceStable(orphans, func(a, b int) bool {
		return domain.CreatedBefore(orphans[a], orphans[b])
	})
	return orphans, nil
}

// childRoles counts direct children per role for one parent.
type childRoles map[domain.Role]int

// FindIncompleteSubtrees flags Features without UserStories and UserStories
// missing Tasks or Tests. A UserStory missing both is reported twice, tasks
// first. Results are ordered by the flagged issue's creation time.
func (r *Rules) FindIncompleteSubtrees(ctx context.Context, store IssueLister, projectID string) ([]domain.IncompleteSubtree, error) {
	issues, err := store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing issues for subtree scan: %w", err)
	}

	children := make(map[string]childRoles, len(issues))
	for _, i := range issues {
		if !i.HasParent() {
			continue
		}
		role, ok := r.RoleOf(i)
		if !ok {
			continue
		}
		if children[*i.ParentID] == nil {
			children[*i.ParentID] = childRoles{}
		}
		children[*i.ParentID][role]++
	}

	sorted := append([]*domain.Issue{}, issues...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return domain.CreatedBefore(sorted[a], sorted[b])
	})

	found := []domain.IncompleteSubtree{}
	for _, i := range sorted {
		role, ok := r.RoleOf(i)
		if !ok {
			continue
		}
		counts := children[i.ID]
		switch role {
		case domain.RoleFeature:
			if counts[domain.RoleUserStory] == 0 {
				found = append(found, domain.IncompleteSubtree{Issue: i, Reason: domain.ReasonFeatureWithoutStories})
			}
		case domain.RoleUserStory:
			if counts[domain.RoleTask] == 0 {
				found = append(found, domain.IncompleteSubtree{Issue: i, Reason: domain.ReasonStoryWithoutTasks})
			}
			if counts[domain.RoleTest] == 0 {
				found = append(found, domain.IncompleteSubtree{Issue: i, Reason: domain.ReasonStoryWithoutTests})
			}
		}
	}
	return found, nil
}
