package roles

import (
	"testing"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRoleMap(t *testing.T) {
	m := DefaultRoleMap()
	for _, r := range domain.AllRoles {
		assert.Equal(t, r.DefaultTracker(), m.Tracker(r))
		got, ok := m.RoleOf(r.DefaultTracker())
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
}

func TestRoleMap_ZeroValueActsAsDefault(t *testing.T) {
	var m RoleMap
	assert.Equal(t, "Epic", m.Tracker(domain.RoleEpic))
	r, ok := m.RoleOf("Bug")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleBug, r)
}

func TestNewRoleMap_OverridesAndBlankFallback(t *testing.T) {
	m := NewRoleMap(map[domain.Role]string{
		domain.RoleEpic:      "Initiative",
		domain.RoleUserStory: "  ",
	})
	assert.Equal(t, "Initiative", m.Tracker(domain.RoleEpic))
	assert.Equal(t, "UserStory", m.Tracker(domain.RoleUserStory))

	_, ok := m.RoleOf("Epic")
	assert.False(t, ok, "a rebound default name no longer resolves")
	r, ok := m.RoleOf("Initiative")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleEpic, r)
}

func TestNewRoleMap_DuplicateTrackerResolvesToLowestLevel(t *testing.T) {
	m := NewRoleMap(map[domain.Role]string{
		domain.RoleTask: "Work",
		domain.RoleBug:  "Work",
	})
	r, ok := m.RoleOf("Work")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleTask, r)
}

func TestRoleMap_Trackers(t *testing.T) {
	m := NewRoleMap(map[domain.Role]string{domain.RoleTest: "Task"})
	assert.Equal(t, []string{"Epic", "Feature"}, m.Trackers(domain.RoleEpic, domain.RoleFeature))
	assert.Equal(t, []string{"Task"}, m.Trackers(domain.RoleTask, domain.RoleTest), "duplicates collapse")
	assert.Empty(t, m.Trackers())
}

func TestRoleMap_UnknownRole(t *testing.T) {
	m := DefaultRoleMap()
	assert.Equal(t, "", m.Tracker(domain.Role(42)))
	_, ok := m.RoleOf("Milestone")
	assert.False(t, ok)
}
