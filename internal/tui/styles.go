package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type AppTheme struct {
	Primary string
	Accent  string
	Text    string
	Subtle  string
	Error   string
	Warning string
	Success string
	Info    string
}

func ArchTheme() AppTheme {
	return AppTheme{
		Primary: "#89b4fa",
		Accent:  "#b4befe",
		Text:    "#cdd6f4",
		Subtle:  "#7f849c",
		Error:   "#f38ba8",
		Warning: "#f9e2af",
		Success: "#a6e3a1",
		Info:    "#89dceb",
	}
}

// NewStyles builds the palette the views draw with. Everything here is
// inline-only: the surface owns layout, so styles never carry margins
// or padding.
func NewStyles(theme AppTheme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Bold(true),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)),

		Bold: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Info)),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Bold(true),

		SelectedOption: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Reverse(true).
			Bold(true),

		HighlightButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Reverse(true).
			Bold(true),
	}
}

type Styles struct {
	Title           lipgloss.Style
	Normal          lipgloss.Style
	Bold            lipgloss.Style
	Subtle          lipgloss.Style
	Warning         lipgloss.Style
	Error           lipgloss.Style
	Success         lipgloss.Style
	Info            lipgloss.Style
	Key             lipgloss.Style
	SelectedOption  lipgloss.Style
	HighlightButton lipgloss.Style
}
