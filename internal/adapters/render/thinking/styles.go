package thinking

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	room    lipgloss.Style
	summary lipgloss.Style
	detail  lipgloss.Style
	footer  lipgloss.Style
	empty   lipgloss.Style
	sealed  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		room:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		summary: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:   lipgloss.NewStyle().Faint(true),
		sealed:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
