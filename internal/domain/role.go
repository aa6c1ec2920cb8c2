package domain

import (
	"fmt"
	"strings"
)

// Role is one of the six fixed positions in the issue hierarchy.
type Role int

const (
	RoleEpic Role = iota
	RoleFeature
	RoleUserStory
	RoleTask
	RoleTest
	RoleBug
)

// AllRoles lists every role in level order.
var AllRoles = []Role{RoleEpic, RoleFeature, RoleUserStory, RoleTask, RoleTest, RoleBug}

// Level returns the depth of the role: 0 for Epic down to 3 for the leaf roles.
func (r Role) Level() int {
	switch r {
	case RoleEpic:
		return 0
	case RoleFeature:
		return 1
	case RoleUserStory:
		return 2
	case RoleTask, RoleTest, RoleBug:
		return 3
	default:
		panic(fmt.Sprintf("domain: unknown role %d", int(r)))
	}
}

// Key returns the configuration token for the role (epic, feature, user_story, ...).
func (r Role) Key() string {
	switch r {
	case RoleEpic:
		return "epic"
	case RoleFeature:
		return "feature"
	case RoleUserStory:
		return "user_story"
	case RoleTask:
		return "task"
	case RoleTest:
		return "test"
	case RoleBug:
		return "bug"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// DefaultTracker is the tracker name bound to the role when nothing is configured.
func (r Role) DefaultTracker() string {
	switch r {
	case RoleEpic:
		return "Epic"
	case RoleFeature:
		return "Feature"
	case RoleUserStory:
		return "UserStory"
	case RoleTask:
		return "Task"
	case RoleTest:
		return "Test"
	case RoleBug:
		return "Bug"
	default:
		return ""
	}
}

func (r Role) String() string {
	return r.Key()
}

// IsValid reports whether r is one of the six declared roles.
func (r Role) IsValid() bool {
	return r >= RoleEpic && r <= RoleBug
}

// ParseRole converts a configuration token into a Role. Matching ignores case
// and accepts "userstory" and "story" as aliases for user_story.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "epic":
		return RoleEpic, nil
	case "feature":
		return RoleFeature, nil
	case "user_story", "userstory", "story":
		return RoleUserStory, nil
	case "task":
		return RoleTask, nil
	case "test":
		return RoleTest, nil
	case "bug":
		return RoleBug, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}
