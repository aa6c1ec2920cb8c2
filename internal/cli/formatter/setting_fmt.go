package formatter

import (
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/service"
)

// FormatSettings renders effective settings with where each value came from.
func FormatSettings(scope string, values []*service.SettingValue) string {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		source := Dim(string(v.Source))
		if v.Source == service.SourceProject {
			source = StyleYellow.Render(string(v.Source))
		}
		rows = append(rows, []string{v.Key, Bold(v.Value), source})
	}
	return RenderBox("Settings · "+scope, RenderTable([]string{"KEY", "VALUE", "SOURCE"}, rows))
}
