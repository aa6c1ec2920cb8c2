package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

// RoleRegistry is the registry surface the setting service needs: reads go
// through Resolve, writes to tracker bindings call Invalidate.
type RoleRegistry interface {
	roles.Resolver
	Invalidate()
}

type settingService struct {
	settings repository.SettingRepo
	registry RoleRegistry
	observer UseCaseObserver
}

func NewSettingService(settings repository.SettingRepo, registry RoleRegistry, observers ...UseCaseObserver) SettingService {
	return &settingService{
		settings: settings,
		registry: registry,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *settingService) Set(ctx context.Context, projectID, key, value string) (err error) {
	fields := map[string]any{"key": key, "scope": scopeLabel(projectID)}
	defer observe(ctx, s.observer, "set-setting", time.Now(), fields, &err)

	if !domain.IsKnownSetting(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	value = strings.TrimSpace(value)
	if key == domain.SettingParentIssueDates {
		switch domain.ParentDatesMode(value) {
		case domain.ParentDatesDerived, domain.ParentDatesIndependent:
		default:
			return fmt.Errorf("setting %s must be %q or %q, got %q", key, domain.ParentDatesDerived, domain.ParentDatesIndependent, value)
		}
	}

	if projectID == "" {
		err = s.settings.SetGlobal(ctx, key, value)
	} else {
		err = s.settings.SetProject(ctx, projectID, key, value)
	}
	if err != nil {
		return err
	}
	if domain.IsTrackerSetting(key) {
		s.registry.Invalidate()
		fields["invalidated"] = true
	}
	return nil
}

func (s *settingService) Get(ctx context.Context, projectID, key string) (*SettingValue, error) {
	def, ok := domain.SettingDefault(key)
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	if projectID != "" {
		v, found, err := s.settings.ProjectOverride(ctx, projectID, key)
		if err != nil {
			return nil, err
		}
		if found && v != "" {
			return &SettingValue{Key: key, Value: v, Source: SourceProject}, nil
		}
	}
	v, found, err := s.settings.GlobalOverride(ctx, key)
	if err != nil {
		return nil, err
	}
	if found && v != "" {
		return &SettingValue{Key: key, Value: v, Source: SourceGlobal}, nil
	}
	return &SettingValue{Key: key, Value: def, Source: SourceDefault}, nil
}

// List returns every setting the planning core reads, tracker bindings in
// role order first.
func (s *settingService) List(ctx context.Context, projectID string) ([]*SettingValue, error) {
	keys := make([]string, 0, len(domain.AllRoles)+1)
	for _, r := range domain.AllRoles {
		keys = append(keys, domain.TrackerSettingKey(r))
	}
	keys = append(keys, domain.SettingParentIssueDates)

	values := make([]*SettingValue, 0, len(keys))
	for _, key := range keys {
		v, err := s.Get(ctx, projectID, key)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func (s *settingService) Roles(ctx context.Context, projectID string) roles.RoleMap {
	return s.registry.Resolve(ctx, projectID)
}

func scopeLabel(projectID string) string {
	if projectID == "" {
		return "global"
	}
	return projectID
}
