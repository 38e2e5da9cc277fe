package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#2563eb")
	colorMuted  = lipgloss.Color("#94a3b8")
	colorError  = lipgloss.Color("#dc2626")
	colorRating = lipgloss.Color("#15803d")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	nameStyle  = lipgloss.NewStyle().Bold(true)

	ratingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRating)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)
