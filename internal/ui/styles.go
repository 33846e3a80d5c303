package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	detailStyle = lipgloss.NewStyle().Padding(0, 2)
)
