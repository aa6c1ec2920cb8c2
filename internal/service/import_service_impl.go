package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/hierarchy"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/importer"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	registry RoleRegistry
	observer UseCaseObserver
	now      func() time.Time
}

func NewImportService(uow db.UnitOfWork, registry RoleRegistry, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		registry: registry,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	plan, err := importer.LoadPlanFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importPlan(ctx, plan)
}

func (s *importService) ImportPlanFile(ctx context.Context, plan *importer.PlanFile) (*ImportResult, error) {
	return s.importPlan(ctx, plan)
}

// importPlan persists the whole plan in one transaction: a rejected row
// leaves nothing behind.
func (s *importService) importPlan(ctx context.Context, file *importer.PlanFile) (result *ImportResult, err error) {
	fields := map[string]any{"project": file.Project.Identifier}
	defer observe(ctx, s.observer, "import-plan", time.Now(), fields, &err)

	if errs := importer.ValidatePlan(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	plan, err := importer.Convert(file, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting plan: %w", err)
	}
	fields["versions"] = len(plan.Versions)
	fields["issues"] = len(plan.Issues)

	rules := hierarchy.NewRules(plan.Roles)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLProjectRepo(tx)
		txSettings := repository.NewSQLSettingRepo(tx)
		txVersions := repository.NewSQLVersionRepo(tx)
		txIssues := repository.NewSQLIssueRepo(tx)

		if err := txProjects.Create(ctx, plan.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, key := range sortedSettingKeys(plan.Settings) {
			if err := txSettings.SetProject(ctx, plan.Project.ID, key, plan.Settings[key]); err != nil {
				return fmt.Errorf("writing setting %s: %w", key, err)
			}
		}
		for _, v := range plan.Versions {
			if err := txVersions.Create(ctx, v); err != nil {
				return fmt.Errorf("creating version %q: %w", v.Name, err)
			}
		}

		created := make(map[string]*domain.Issue, len(plan.Issues))
		for _, issue := range plan.Issues {
			var parent *domain.Issue
			if issue.HasParent() {
				parent = created[*issue.ParentID]
			}
			if err := rules.ValidateParent(issue, parent); err != nil {
				return fmt.Errorf("issue %q: %w", issue.Subject, err)
			}
			if err := txIssues.Create(ctx, issue); err != nil {
				return fmt.Errorf("creating issue %q: %w", issue.Subject, err)
			}
			created[issue.ID] = issue
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(plan.Settings) > 0 {
		s.registry.Invalidate()
	}
	return &ImportResult{
		Project:      plan.Project,
		SettingCount: len(plan.Settings),
		VersionCount: len(plan.Versions),
		IssueCount:   len(plan.Issues),
	}, nil
}

func sortedSettingKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
