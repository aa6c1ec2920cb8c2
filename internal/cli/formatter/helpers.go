package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	content = strings.TrimRight(content, "\n")
	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatDate renders an optional date, or a dimmed placeholder.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(dateLayout)
}

// DateRange renders a start..due schedule.
func DateRange(start, due *time.Time) string {
	if start == nil && due == nil {
		return Dim("unscheduled")
	}
	return FormatDate(start) + " → " + FormatDate(due)
}

// VersionNamer resolves version ids to display names.
type VersionNamer map[string]string

// Name returns the version's name, "none" for an empty id, or the truncated
// id when the version is unknown.
func (n VersionNamer) Name(id *string) string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return Dim("none")
	}
	if name, ok := n[*id]; ok {
		return name
	}
	return TruncID(*id)
}
