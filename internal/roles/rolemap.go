package roles

import (
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// RoleMap is a project's resolved role -> tracker binding. It is immutable
// once built and safe to share between goroutines.
type RoleMap struct {
	trackers  [len(roleSlots)]string
	byTracker map[string]domain.Role
}

var roleSlots = [...]domain.Role{
	domain.RoleEpic, domain.RoleFeature, domain.RoleUserStory,
	domain.RoleTask, domain.RoleTest, domain.RoleBug,
}

// DefaultRoleMap binds every role to its hardcoded default tracker name.
func DefaultRoleMap() RoleMap {
	return NewRoleMap(nil)
}

// NewRoleMap builds a RoleMap from explicit bindings; roles missing from
// bindings, or bound to a blank name, use their default tracker. When two
// roles share a tracker name, RoleOf reports the one with the lowest level.
func NewRoleMap(bindings map[domain.Role]string) RoleMap {
	m := RoleMap{byTracker: make(map[string]domain.Role, len(roleSlots))}
	for _, r := range roleSlots {
		name := strings.TrimSpace(bindings[r])
		if name == "" {
			name = r.DefaultTracker()
		}
		m.trackers[r] = name
		if _, taken := m.byTracker[name]; !taken {
			m.byTracker[name] = r
		}
	}
	return m
}

// Tracker returns the tracker name bound to role.
func (m RoleMap) Tracker(role domain.Role) string {
	if !role.IsValid() {
		return ""
	}
	if m.byTracker == nil {
		return role.DefaultTracker()
	}
	return m.trackers[role]
}

// RoleOf maps a tracker name back to its role. Unknown trackers report false.
func (m RoleMap) RoleOf(tracker string) (domain.Role, bool) {
	if m.byTracker == nil {
		return DefaultRoleMap().RoleOf(tracker)
	}
	r, ok := m.byTracker[strings.TrimSpace(tracker)]
	return r, ok
}

// Trackers returns the distinct tracker names bound to roles, in argument order.
func (m RoleMap) Trackers(roles ...domain.Role) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		name := m.Tracker(r)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
