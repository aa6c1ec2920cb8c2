// Package hierarchy enforces which role may parent which and scans a
// project's tree for structural gaps.
package hierarchy

import (
	"fmt"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

// allowedParents is the parent table. Epic is a root; Bug may also sit
// directly under a Feature.
var allowedParents = map[domain.Role][]domain.Role{
	domain.RoleEpic:      nil,
	domain.RoleFeature:   {domain.RoleEpic},
	domain.RoleUserStory: {domain.RoleFeature},
	domain.RoleTask:      {domain.RoleUserStory},
	domain.RoleTest:      {domain.RoleUserStory},
	domain.RoleBug:       {domain.RoleUserStory, domain.RoleFeature},
}

// Rules evaluates parent/child legality for one project's role bindings.
type Rules struct {
	roles roles.RoleMap
}

// NewRules creates Rules over a resolved RoleMap.
func NewRules(m roles.RoleMap) *Rules {
	return &Rules{roles: m}
}

// ValidParent reports whether parent may directly contain child.
func (r *Rules) ValidParent(child, parent domain.Role) bool {
	for _, p := range allowedParents[child] {
		if p == parent {
			return true
		}
	}
	return false
}

func (r *Rules) Level(role domain.Role) int {
	return role.Level()
}

// AllowedParents returns the roles that may parent role, most specific first.
func (r *Rules) AllowedParents(role domain.Role) []domain.Role {
	return append([]domain.Role{}, allowedParents[role]...)
}

// AllowedChildren returns the roles role may parent, in level order.
func (r *Rules) AllowedChildren(role domain.Role) []domain.Role {
	children := []domain.Role{}
	for _, c := range domain.AllRoles {
		if r.ValidParent(c, role) {
			children = append(children, c)
		}
	}
	return children
}

// RoleOf resolves an issue's tracker to its role.
func (r *Rules) RoleOf(issue *domain.Issue) (domain.Role, bool) {
	return r.roles.RoleOf(issue.Tracker)
}

// ValidateParent checks a proposed parent for child. A nil parent is
// accepted for every role; missing parents are reported by FindOrphans
// instead of blocking writes.
func (r *Rules) ValidateParent(child, parent *domain.Issue) error {
	childRole, ok := r.RoleOf(child)
	if !ok {
		return &Error{
			Code:    CodeUnknownTracker,
			IssueID: child.ID,
			What:    fmt.Sprintf("tracker %q is not bound to any role", child.Tracker),
			Fix:     "bind it with 'ladder setting set tracker_<role> " + child.Tracker + "'",
		}
	}
	if parent == nil {
		return nil
	}
	if childRole == domain.RoleEpic {
		return &Error{
			Code:    CodeRootHasParent,
			IssueID: child.ID,
			What:    fmt.Sprintf("%s %q is a root and cannot have a parent", child.Tracker, child.Subject),
		}
	}
	parentRole, ok := r.RoleOf(parent)
	if !ok {
		return &Error{
			Code:    CodeUnknownTracker,
			IssueID: parent.ID,
			What:    fmt.Sprintf("parent tracker %q is not bound to any role", parent.Tracker),
		}
	}
	if parent.ID == child.ID {
		return &Error{
			Code:    CodeInvalidParent,
			IssueID: child.ID,
			What:    "an issue cannot be its own parent",
		}
	}
	if parent.ProjectID != child.ProjectID {
		return &Error{
			Code:    CodeInvalidParent,
			IssueID: child.ID,
			What:    fmt.Sprintf("parent %s belongs to another project", parent.ID),
		}
	}
	if !r.ValidParent(childRole, parentRole) {
		return &Error{
			Code:    CodeInvalidParent,
			IssueID: child.ID,
			What:    fmt.Sprintf("%s cannot be placed under %s", r.roles.Tracker(childRole), r.roles.Tracker(parentRole)),
			Fix:     "allowed parents: " + r.trackerList(r.AllowedParents(childRole)),
		}
	}
	return nil
}

func (r *Rules) trackerList(rs []domain.Role) string {
	return strings.Join(r.roles.Trackers(rs...), ", ")
}
