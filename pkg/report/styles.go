package report

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#874BFD")
	colorGood    = lipgloss.Color("#00FF99")
	colorSubtle  = lipgloss.Color("#64748B")
	colorWarning = lipgloss.Color("#F59E0B")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Underline(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Bold(true).
			Width(18)

	valueStyle = lipgloss.NewStyle().Foreground(colorGood)
	dimStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarning)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)
)
