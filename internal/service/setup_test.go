package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/grid"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/propagation"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every use-case event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	projects *repository.SQLProjectRepo
	versions *repository.SQLVersionRepo
	issues   *repository.SQLIssueRepo
	settings *repository.SQLSettingRepo
	registry *roles.Registry
	observer *recordingObserver

	projectSvc  ProjectService
	versionSvc  VersionService
	issueSvc    IssueService
	settingSvc  SettingService
	planningSvc PlanningService
	importSvc   ImportService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	env := &testEnv{
		db:       database,
		uow:      uow,
		projects: repository.NewSQLProjectRepo(database),
		versions: repository.NewSQLVersionRepo(database),
		issues:   repository.NewSQLIssueRepo(database),
		settings: repository.NewSQLSettingRepo(database),
		observer: &recordingObserver{},
	}
	env.registry = roles.NewRegistry(env.settings, nil)

	env.projectSvc = NewProjectService(env.projects)
	env.versionSvc = NewVersionService(env.versions)
	env.issueSvc = NewIssueService(env.issues, env.registry, uow)
	env.settingSvc = NewSettingService(env.settings, env.registry, env.observer)
	env.planningSvc = NewPlanningService(
		propagation.NewEngine(uow, nil),
		grid.NewBuilder(env.issues, env.versions, env.registry),
		env.issues,
		env.registry,
		env.observer,
	)
	env.importSvc = NewImportService(uow, env.registry, env.observer)
	return env
}

func (e *testEnv) project(t *testing.T, identifier string) *domain.Project {
	t.Helper()
	p := &domain.Project{Identifier: identifier, Name: identifier}
	require.NoError(t, e.projectSvc.Create(context.Background(), p))
	return p
}

func (e *testEnv) version(t *testing.T, projectID, name, effective string) *domain.Version {
	t.Helper()
	v := &domain.Version{ProjectID: projectID, Name: name}
	if effective != "" {
		d := testutil.Date(effective)
		v.EffectiveDate = &d
	}
	require.NoError(t, e.versionSvc.Create(context.Background(), v))
	return v
}

func (e *testEnv) issue(t *testing.T, projectID string, role domain.Role, subject string, parent *domain.Issue) *domain.Issue {
	t.Helper()
	i := &domain.Issue{ProjectID: projectID, Tracker: role.DefaultTracker(), Subject: subject}
	if parent != nil {
		i.ParentID = &parent.ID
	}
	require.NoError(t, e.issueSvc.Create(context.Background(), i))
	return i
}
