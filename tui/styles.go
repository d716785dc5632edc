package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#2563eb")
	success = lipgloss.Color("#16a34a")
	danger  = lipgloss.Color("#dc2626")
	warning = lipgloss.Color("#d97706")
	muted   = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#ffffff")).Background(accent)

	cardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).Padding(0, 2).Width(22)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
	cardLabelStyle = lipgloss.NewStyle().Foreground(muted)

	sectionStyle = lipgloss.NewStyle().Padding(1, 2)
	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)

	formStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).Padding(1, 2)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)
	helpStyle   = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)

	toastStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(success).Bold(true),
		"error":   lipgloss.NewStyle().Foreground(danger).Bold(true),
		"info":    lipgloss.NewStyle().Foreground(accent),
	}

	badgeStyles = map[string]lipgloss.Style{
		"low-stock": lipgloss.NewStyle().Foreground(danger),
		"in-stock":  lipgloss.NewStyle().Foreground(success),
	}
)
