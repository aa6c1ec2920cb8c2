package service

import (
	"context"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/grid"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/hierarchy"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/propagation"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

type planningService struct {
	engine   *propagation.Engine
	grid     *grid.Builder
	issues   hierarchy.IssueLister
	roles    roles.Resolver
	observer UseCaseObserver
}

func NewPlanningService(
	engine *propagation.Engine,
	builder *grid.Builder,
	issues hierarchy.IssueLister,
	resolver roles.Resolver,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
		engine:   engine,
		grid:     builder,
		issues:   issues,
		roles:    resolver,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planningService) Propagate(ctx context.Context, issueID string, versionID *string, updateParent bool) (report *domain.ChangeReport, err error) {
	fields := map[string]any{
		"issue":         issueID,
		"version":       versionLabel(versionID),
		"update_parent": updateParent,
	}
	defer observe(ctx, s.observer, "propagate", time.Now(), fields, &err)

	report, err = s.engine.PropagateVersionAndDates(ctx, issueID, versionID, updateParent)
	if err != nil {
		return nil, err
	}
	fields["changed"] = report.ChangedCount()
	return report, nil
}

// Cascade assigns versionID to every descendant of rootID. With includeRoot
// the root is written too, in the same transaction.
func (s *planningService) Cascade(ctx context.Context, rootID string, versionID *string, includeRoot bool) (result *CascadeResult, err error) {
	fields := map[string]any{
		"root":         rootID,
		"version":      versionLabel(versionID),
		"include_root": includeRoot,
	}
	defer observe(ctx, s.observer, "cascade", time.Now(), fields, &err)

	result = &CascadeResult{}
	if includeRoot {
		result.Root, result.Descendants, err = s.engine.MoveSubtree(ctx, rootID, versionID)
	} else {
		result.Descendants, err = s.engine.PropagateVersionToDescendants(ctx, rootID, versionID)
	}
	if err != nil {
		return nil, err
	}
	fields["descendants"] = result.Descendants
	return result, nil
}

func (s *planningService) Grid(ctx context.Context, projectID string) (index *domain.GridIndex, err error) {
	fields := map[string]any{"project": projectID}
	defer observe(ctx, s.observer, "grid", time.Now(), fields, &err)

	index, err = s.grid.Build(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fields["epics"] = len(index.EpicOrder)
	fields["cells"] = len(index.Index)
	fields["stories"] = index.StoryCount()
	return index, nil
}

func (s *planningService) Orphans(ctx context.Context, projectID string) ([]*domain.Issue, error) {
	rules := hierarchy.NewRules(s.roles.Resolve(ctx, projectID))
	return rules.FindOrphans(ctx, s.issues, projectID)
}

func (s *planningService) Incomplete(ctx context.Context, projectID string) ([]domain.IncompleteSubtree, error) {
	rules := hierarchy.NewRules(s.roles.Resolve(ctx, projectID))
	return rules.FindIncompleteSubtrees(ctx, s.issues, projectID)
}
