package roles

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// ConfigSource reads role binding overrides. Implementations return
// found=false when no value is stored.
type ConfigSource interface {
	ProjectOverride(ctx context.Context, projectID, key string) (string, bool, error)
	GlobalOverride(ctx context.Context, key string) (string, bool, error)
}

// Resolver is the read side of a Registry.
type Resolver interface {
	Resolve(ctx context.Context, projectID string) RoleMap
}

// Registry resolves and caches per-project role bindings. Lookup order for
// each role is project override, global override, hardcoded default.
// Resolve never fails; store errors are logged and treated as "not set".
type Registry struct {
	source ConfigSource
	logger *slog.Logger

	mu         sync.RWMutex
	cache      map[string]RoleMap
	generation uint64
	group      singleflight.Group
}

// NewRegistry creates a Registry over source. A nil logger discards output.
func NewRegistry(source ConfigSource, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		source: source,
		logger: logger,
		cache:  make(map[string]RoleMap),
	}
}

// Resolve returns the role bindings for projectID. Concurrent misses for the
// same project share one load.
func (r *Registry) Resolve(ctx context.Context, projectID string) RoleMap {
	r.mu.RLock()
	m, ok := r.cache[projectID]
	gen := r.generation
	r.mu.RUnlock()
	if ok {
		return m
	}

	// Loads are shared only within one generation, so a caller arriving
	// after Invalidate never joins a load that started before it.
	key := fmt.Sprintf("%s#%d", projectID, gen)
	result, _, _ := r.group.Do(key, func() (any, error) {
		r.mu.RLock()
		m, ok := r.cache[projectID]
		r.mu.RUnlock()
		if ok {
			return m, nil
		}

		m = r.load(ctx, projectID)

		r.mu.Lock()
		// An Invalidate during the load means m may be stale; serve it to
		// the callers of this generation but do not cache it.
		if r.generation == gen {
			r.cache[projectID] = m
		}
		r.mu.Unlock()
		return m, nil
	})
	return result.(RoleMap)
}

// Invalidate drops every cached binding. The configuration write path calls
// it after changing a tracker setting.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]RoleMap)
	r.generation++
	r.mu.Unlock()
	r.logger.Debug("role registry invalidated")
}

func (r *Registry) load(ctx context.Context, projectID string) RoleMap {
	bindings := make(map[domain.Role]string, len(domain.AllRoles))
	for _, role := range domain.AllRoles {
		if name, ok := r.lookup(ctx, projectID, domain.TrackerSettingKey(role)); ok {
			bindings[role] = name
		}
	}
	m := NewRoleMap(bindings)
	r.logger.Debug("role bindings resolved",
		"project_id", projectID,
		"epic", m.Tracker(domain.RoleEpic),
		"feature", m.Tracker(domain.RoleFeature),
		"user_story", m.Tracker(domain.RoleUserStory),
	)
	return m
}

func (r *Registry) lookup(ctx context.Context, projectID, key string) (string, bool) {
	if r.source == nil {
		return "", false
	}
	if projectID != "" {
		value, ok, err := r.source.ProjectOverride(ctx, projectID, key)
		if err != nil {
			r.logger.Warn("project role override unavailable, falling back",
				"project_id", projectID, "key", key, "error", err)
		} else if ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	value, ok, err := r.source.GlobalOverride(ctx, key)
	if err != nil {
		r.logger.Warn("global role override unavailable, using default",
			"key", key, "error", err)
		return "", false
	}
	if ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), true
	}
	return "", false
}
