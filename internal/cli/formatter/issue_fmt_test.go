package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueAt(id, tracker, subject string, parent *string, minute int) *domain.Issue {
	created := time.Date(2025, 1, 1, 9, minute, 0, 0, time.UTC)
	return &domain.Issue{ID: id, ProjectID: "p", ParentID: parent, Tracker: tracker, Subject: subject, CreatedAt: created, UpdatedAt: created}
}

func TestBuildIssueTree(t *testing.T) {
	e := "e1"
	f := "f1"
	missing := "gone"
	issues := []*domain.Issue{
		issueAt("s1", "UserStory", "Card form", &f, 3),
		issueAt("f1", "Feature", "Payments", &e, 2),
		issueAt("e1", "Epic", "Checkout", nil, 1),
		issueAt("s2", "UserStory", "Stray", &missing, 4),
	}
	v := "v1"
	issues[0].VersionID = &v

	roots := BuildIssueTree(issues, roles.DefaultRoleMap(), VersionNamer{"v1": "1.0"})
	require.Len(t, roots, 2, "issue with a missing parent becomes a root")
	assert.Contains(t, roots[0].Label, "Checkout")
	require.Len(t, roots[0].Children, 1)
	require.Len(t, roots[0].Children[0].Children, 1)
	story := roots[0].Children[0].Children[0]
	assert.Contains(t, story.Label, "Card form")
	assert.Equal(t, "1.0", stripANSI(story.Detail))
	assert.Contains(t, roots[1].Label, "Stray")
}

func TestFormatIssueTree_UnknownTracker(t *testing.T) {
	project := &domain.Project{ID: "p", Identifier: "shop"}
	out := stripANSI(FormatIssueTree(project, []*domain.Issue{issueAt("x", "Milestone", "Launch", nil, 1)}, roles.DefaultRoleMap(), nil))
	assert.Contains(t, out, "Milestone? Launch")
	assert.Contains(t, out, "ISSUES · SHOP")
}

func TestFormatIssueDetail(t *testing.T) {
	e := "e1"
	feature := issueAt("f1", "Feature", "Payments", &e, 2)
	out := stripANSI(FormatIssueDetail(IssueDetail{
		Issue:    feature,
		Parent:   issueAt("e1", "Epic", "Checkout", nil, 1),
		Children: []*domain.Issue{issueAt("s1", "UserStory", "Card form", &feature.ID, 3)},
		Roles:    roles.DefaultRoleMap(),
	}))
	assert.Contains(t, out, "Feature Payments")
	assert.Contains(t, out, "Epic Checkout")
	assert.Contains(t, out, "CHILDREN")
	assert.Contains(t, out, "UserStory Card form")
	assert.True(t, strings.Contains(out, "unscheduled"))
}
