// Package styles provides the colour palette and lipgloss styles of the picker.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the picker colour palette.
type Theme struct {
	Accent     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#FF0033"), // YouTube red
		Foreground: lipgloss.Color("#E6E6E6"),
		Muted:      lipgloss.Color("#8A8A8A"),
		Success:    lipgloss.Color("#A6E3A1"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Bar:        lipgloss.Color("#1F1F1F"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Header renders the picker title.
	Header lipgloss.Style

	// Prompt renders the label in front of the query input.
	Prompt lipgloss.Style

	// InputField wraps the query input.
	InputField lipgloss.Style

	// Item renders an unselected result row.
	Item lipgloss.Style

	// SelectedItem renders the highlighted result row.
	SelectedItem lipgloss.Style

	// VideoID renders the id column next to a title.
	VideoID lipgloss.Style

	// Hint renders help text and placeholders.
	Hint lipgloss.Style

	Error lipgloss.Style

	// Label renders the picked video line.
	Label lipgloss.Style

	StatusBar lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Item: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		SelectedItem: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Accent),

		VideoID: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Hint: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
