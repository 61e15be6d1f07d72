package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	section     lipgloss.Style
	sensorName  lipgloss.Style
	value       lipgloss.Style
	detail      lipgloss.Style
	warning     lipgloss.Style
	empty       lipgloss.Style
	unavailable lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:     lipgloss.NewStyle().MarginTop(1),
		sensorName:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		value:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		detail:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:       lipgloss.NewStyle().Faint(true),
		unavailable: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("203")),
	}
}
