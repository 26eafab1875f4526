// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	StatusBg   lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#0EA5E9"), // Sky
		Secondary:  lipgloss.Color("#A78BFA"), // Lavender
		Foreground: lipgloss.Color("#E2E8F0"),
		Muted:      lipgloss.Color("#64748B"),
		Success:    lipgloss.Color("#4ADE80"),
		Warning:    lipgloss.Color("#FACC15"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#334155"),
		StatusBg:   lipgloss.Color("#0F172A"),
	}
}

// Score bands used to colour similarity scores.
const (
	StrongScore = 0.85
	FairScore   = 0.75
)

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// Skill renders a matched skill tag.
	Skill lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.StatusBg).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Skill: lipgloss.NewStyle().
			Foreground(theme.Secondary),
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

// Score returns the style for a similarity score:
// green when strong, yellow when fair, muted otherwise.
func (s *Styles) Score(score float64) lipgloss.Style {
	switch {
	case score >= StrongScore:
		return s.Success
	case score >= FairScore:
		return s.Warning
	default:
		return s.Muted
	}
}
