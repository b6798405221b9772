package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles used by the terminal page.
type Styles struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Muted     lipgloss.Style
	Hidden    lipgloss.Style
	Accent    lipgloss.Style
	Stat      lipgloss.Style
	Tag       lipgloss.Style
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	Card      lipgloss.Style
	Focused   lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	StatusBar lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.Color("#2563EB")
	muted := lipgloss.Color("#616E7C")
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Heading:   lipgloss.NewStyle().Bold(true).Underline(true),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Hidden:    lipgloss.NewStyle().Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(accent),
		Stat:      lipgloss.NewStyle().Bold(true).Foreground(accent).Width(8).Align(lipgloss.Right),
		Tag:       lipgloss.NewStyle().Foreground(lipgloss.Color("#4338CA")),
		Active:    lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1),
		Inactive:  lipgloss.NewStyle().Padding(0, 1),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(accent),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")),
		StatusBar: lipgloss.NewStyle().Foreground(muted).Reverse(true),
	}
}
