package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for rendered tables.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Label  lipgloss.Style
	Value  lipgloss.Style
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Value:  lipgloss.NewStyle(),
		Border: lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// PlainStyles renders without colors or attributes.
func PlainStyles() Styles {
	return Styles{
		Label:  lipgloss.NewStyle(),
		Value:  lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
	}
}

// Row is one key/value line of a table.
type Row struct {
	Key   string
	Value string
}

// Rows is the input accepted by FormatTable.
type Rows []Row

// RenderTable renders rows as a two-column table with aligned values.
func RenderTable(s Styles, rows Rows) string {
	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, lipgloss.Width(r.Key))
	}

	var lines []string
	for _, r := range rows {
		pad := strings.Repeat(" ", keyWidth-lipgloss.Width(r.Key))
		lines = append(lines, s.Label.Render(r.Key)+pad+s.Border.Render(" │ ")+s.Value.Render(r.Value))
	}
	return strings.Join(lines, "\n")
}
