// Package themes holds the colour schemes used by the results browser.
package themes

import (
	"github.com/Veraticus/csvdescribe/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Selected   lipgloss.Style
	Header     lipgloss.Style
	Status     lipgloss.Style
	Exact      lipgloss.Style
	Substring  lipgloss.Style
	Fallback   lipgloss.Style
	Empty      lipgloss.Style
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Foreground lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary:    lipgloss.Color("#7c3aed"),
	Muted:      lipgloss.Color("#737373"),
	Border:     lipgloss.Color("#404040"),
	Foreground: lipgloss.Color("#fafafa"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#7c3aed")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#a78bfa")),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		MarginTop(1),
	Exact: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")),
	Substring: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Fallback: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")),
	Empty: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#737373")),
}

// MatchStyle returns the style used to render a match kind.
func (t Theme) MatchStyle(kind model.MatchKind) lipgloss.Style {
	switch kind {
	case model.MatchExact:
		return t.Exact
	case model.MatchSubstring:
		return t.Substring
	default:
		return t.Fallback
	}
}
