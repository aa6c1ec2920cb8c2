package formatter

import (
	"fmt"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
)

// GridLabels resolves grid ids to display names.
type GridLabels struct {
	Issues   map[string]string
	Versions VersionNamer
}

func (l GridLabels) issue(id string) string {
	if s, ok := l.Issues[id]; ok {
		return s
	}
	return id
}

func (l GridLabels) version(key string) string {
	if key == domain.NoneVersion {
		return "(none)"
	}
	return l.Versions.Name(&key)
}

// FormatGrid renders the grid index as a table: one row per epic/feature
// pair, one column per version, each cell listing its user stories.
func FormatGrid(index *domain.GridIndex, labels GridLabels) string {
	headers := []string{"EPIC", "FEATURE"}
	for _, v := range index.VersionOrder {
		headers = append(headers, labels.version(v))
	}

	var rows [][]string
	for _, epicID := range index.EpicOrder {
		features := index.FeatureOrderByEpic[epicID]
		if len(features) == 0 {
			rows = append(rows, []string{StylePurple.Render(labels.issue(epicID)), Dim("--")})
			continue
		}
		for fi, featureID := range features {
			epicCell := ""
			if fi == 0 {
				epicCell = StylePurple.Render(labels.issue(epicID))
			}
			row := []string{epicCell, StyleBlue.Render(labels.issue(featureID))}
			for _, v := range index.VersionOrder {
				ids, _ := index.Cell(epicID, featureID, v)
				row = append(row, storyCell(ids, labels))
			}
			rows = append(rows, row)
		}
	}

	body := RenderTable(headers, rows)
	summary := Dim(fmt.Sprintf("%d epic(s), %d cell(s), %d stor(ies)", len(index.EpicOrder), len(index.Index), index.StoryCount()))
	return RenderBox("Grid", body+"\n"+summary)
}

func storyCell(ids []string, labels GridLabels) string {
	if len(ids) == 0 {
		return Dim("·")
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = labels.issue(id)
	}
	return strings.Join(names, ", ")
}
