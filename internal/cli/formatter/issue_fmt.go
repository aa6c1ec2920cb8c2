package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
)

// IssueDetail holds everything rendered by the issue show view.
type IssueDetail struct {
	Issue    *domain.Issue
	Parent   *domain.Issue
	Children []*domain.Issue
	Roles    roles.RoleMap
	Versions VersionNamer
}

// FormatIssueDetail renders one issue with its parent and direct children.
func FormatIssueDetail(d IssueDetail) string {
	i := d.Issue
	role, known := d.Roles.RoleOf(i.Tracker)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", TrackerBadge(i.Tracker, role, known), Bold(i.Subject))
	rows := [][]string{
		{Dim("id"), i.ID},
		{Dim("version"), d.Versions.Name(i.VersionID)},
		{Dim("schedule"), DateRange(i.StartDate, i.DueDate)},
	}
	if known {
		rows = append(rows, []string{Dim("level"), fmt.Sprintf("%d", role.Level())})
	}
	if d.Parent != nil {
		prole, pknown := d.Roles.RoleOf(d.Parent.Tracker)
		rows = append(rows, []string{Dim("parent"), TrackerBadge(d.Parent.Tracker, prole, pknown) + " " + d.Parent.Subject})
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-10s %s\n", r[0], r[1])
	}

	if len(d.Children) > 0 {
		b.WriteString("\n" + Header("Children") + "\n")
		for _, c := range d.Children {
			crole, cknown := d.Roles.RoleOf(c.Tracker)
			fmt.Fprintf(&b, "%s %s %s\n", TrackerBadge(c.Tracker, crole, cknown), c.Subject, TruncID(c.ID))
		}
	}
	return RenderBox("Issue", b.String())
}

// BuildIssueTree arranges a project's issues into trees. Issues whose parent
// is not in the list become roots. Siblings keep creation order.
func BuildIssueTree(issues []*domain.Issue, roleMap roles.RoleMap, versions VersionNamer) []*TreeNode {
	sorted := append([]*domain.Issue{}, issues...)
	sort.SliceStable(sorted, func(a, b int) bool { return domain.CreatedBefore(sorted[a], sorted[b]) })

	nodes := make(map[string]*TreeNode, len(sorted))
	for _, i := range sorted {
		role, known := roleMap.RoleOf(i.Tracker)
		detail := ""
		if i.VersionKey() != "" {
			detail = versions.Name(i.VersionID)
		}
		nodes[i.ID] = &TreeNode{
			Label:  i.Subject + " " + TruncID(i.ID),
			Badge:  TrackerBadge(i.Tracker, role, known),
			Detail: detail,
		}
	}

	var roots []*TreeNode
	for _, i := range sorted {
		n := nodes[i.ID]
		if i.HasParent() {
			if p, ok := nodes[*i.ParentID]; ok {
				p.Children = append(p.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

// FormatIssueTree renders the project's issue hierarchy.
func FormatIssueTree(project *domain.Project, issues []*domain.Issue, roleMap roles.RoleMap, versions VersionNamer) string {
	if len(issues) == 0 {
		return RenderBox("Issues · "+project.DisplayID(), Dim("No issues."))
	}
	return RenderBox("Issues · "+project.DisplayID(), RenderTree(BuildIssueTree(issues, roleMap, versions)))
}
