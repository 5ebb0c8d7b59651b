package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/roster"
)

var (
	// Base styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6")).
			MarginBottom(1)

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("240")).
				Bold(true)

	// Status colors
	activeColor   = lipgloss.Color("2") // Green
	resignedColor = lipgloss.Color("1") // Red
	hiddenColor   = lipgloss.Color("8") // Gray

	accentColor = lipgloss.Color("63")
	chipColor   = lipgloss.Color("12")

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	activePanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor)

	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(chipColor)

	mutedChipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("8"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func statusColor(s roster.Status) lipgloss.Color {
	switch s {
	case roster.StatusActive:
		return activeColor
	case roster.StatusResigned:
		return resignedColor
	default:
		return hiddenColor
	}
}
