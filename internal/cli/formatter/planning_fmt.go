package formatter

import (
	"fmt"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// FormatChangeReport renders the outcome of a version propagation.
func FormatChangeReport(r *domain.ChangeReport, versions VersionNamer) string {
	var b strings.Builder
	writeIssue := func(label string, i *domain.Issue, changed bool) {
		fmt.Fprintf(&b, "%-8s %s  %s  %s  %s\n",
			Dim(label), Bold(i.Subject), versions.Name(i.VersionID), DateRange(i.StartDate, i.DueDate), Changed(changed))
	}

	writeIssue("target", r.Target, r.TargetChanged)
	for _, s := range r.ChangedSiblings {
		writeIssue("sibling", s, true)
	}
	if r.Parent != nil {
		writeIssue("parent", r.Parent, r.ParentChanged)
	}
	fmt.Fprintf(&b, "\n%s", Dim(fmt.Sprintf("%d issue(s) changed", r.ChangedCount())))
	return RenderBox("Propagation", b.String())
}

// FormatCascade renders the outcome of a subtree cascade.
func FormatCascade(root *domain.ChangeReport, descendants int, versions VersionNamer) string {
	var b strings.Builder
	if root != nil {
		fmt.Fprintf(&b, "%-8s %s  %s  %s\n",
			Dim("root"), Bold(root.Target.Subject), versions.Name(root.Target.VersionID), Changed(root.TargetChanged))
	}
	fmt.Fprintf(&b, "%d descendant(s) updated", descendants)
	return RenderBox("Cascade", b.String())
}

// FormatOrphans lists issues that should have a parent but do not.
func FormatOrphans(orphans []*domain.Issue) string {
	if len(orphans) == 0 {
		return StyleGreen.Render("✔ No orphaned issues.")
	}
	rows := make([][]string, 0, len(orphans))
	for _, o := range orphans {
		rows = append(rows, []string{o.Tracker, Bold(o.Subject), TruncID(o.ID)})
	}
	return RenderBox("Orphans", RenderTable([]string{"TRACKER", "SUBJECT", "ID"}, rows))
}

// FormatIncomplete lists subtrees missing expected children.
func FormatIncomplete(found []domain.IncompleteSubtree) string {
	if len(found) == 0 {
		return StyleGreen.Render("✔ Every subtree is complete.")
	}
	rows := make([][]string, 0, len(found))
	for _, f := range found {
		rows = append(rows, []string{StyleYellow.Render(string(f.Reason)), Bold(f.Issue.Subject), TruncID(f.Issue.ID)})
	}
	return RenderBox("Incomplete", RenderTable([]string{"REASON", "SUBJECT", "ID"}, rows))
}
