package formatter

import (
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"IDENTIFIER", "NAME", "ID", "CREATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.DisplayID(),
			Bold(p.Name),
			TruncID(p.ID),
			p.CreatedAt.Format(dateLayout),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatVersionList renders a project's versions in store order.
func FormatVersionList(project *domain.Project, versions []*domain.Version) string {
	headers := []string{"NAME", "EFFECTIVE", "ID"}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, []string{
			Bold(v.Name),
			FormatDate(v.EffectiveDate),
			TruncID(v.ID),
		})
	}
	return RenderBox("Versions · "+project.DisplayID(), RenderTable(headers, rows))
}
