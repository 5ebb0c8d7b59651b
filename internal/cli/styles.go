package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/roster"
)

// Consistent color scheme for record statuses across all output
var (
	StyleActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
	StyleResigned = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
	StyleHidden   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // Gray

	// UI elements
	StyleDept      = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
	StyleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	StyleHighlight = lipgloss.NewStyle().Bold(true)
	StyleWarning   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	StyleHeader    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
)

// GetStatusStyle returns the style for a record status
func GetStatusStyle(status roster.Status) lipgloss.Style {
	switch status {
	case roster.StatusActive:
		return StyleActive
	case roster.StatusResigned:
		return StyleResigned
	case roster.StatusHidden:
		return StyleHidden
	default:
		return lipgloss.NewStyle()
	}
}
