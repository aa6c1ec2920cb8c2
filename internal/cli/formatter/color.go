package formatter

import (
	"fmt"
	"strings"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RoleStyle returns the style used for issues of the given role.
func RoleStyle(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleEpic:
		return StylePurple.Bold(true)
	case domain.RoleFeature:
		return StyleBlue.Bold(true)
	case domain.RoleUserStory:
		return StyleGreen
	case domain.RoleTask:
		return StyleFg
	case domain.RoleTest:
		return StyleAqua
	case domain.RoleBug:
		return StyleRed
	default:
		return StyleDim
	}
}

// TrackerBadge renders a tracker name in its role's color. Trackers that do
// not resolve to a role are dimmed and marked with a question mark.
func TrackerBadge(tracker string, role domain.Role, known bool) string {
	if !known {
		return StyleDim.Render(tracker + "?")
	}
	return RoleStyle(role).Render(tracker)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Changed marks a value that a write actually modified.
func Changed(changed bool) string {
	if changed {
		return StyleYellow.Render("● changed")
	}
	return StyleDim.Render("○ unchanged")
}
