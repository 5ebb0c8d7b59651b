package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/roster"
)

func renderRosterList(employees []roster.Employee, cursor int, selectedEmail string, width int) string {
	var output strings.Builder

	header := fmt.Sprintf("  %-18s %-14s %-18s %-9s", "Name", "Department", "Position", "Status")
	output.WriteString(lipgloss.NewStyle().Bold(true).Render(header) + "\n")
	if width > 0 {
		output.WriteString(strings.Repeat("─", width) + "\n")
	}

	for i, e := range employees {
		mark := " "
		if e.Email == selectedEmail {
			mark = "●"
		}
		line := fmt.Sprintf("%s %-18s %-14s %-18s ",
			mark,
			truncate(e.FullName, 18),
			truncate(e.Department, 14),
			truncate(e.Position, 18),
		)
		line += lipgloss.NewStyle().Foreground(statusColor(e.Status)).Render(fmt.Sprintf("%-9s", e.Status))

		if i == cursor {
			line = selectedRowStyle.Render(line)
		} else {
			line = rowStyle.Render(line)
		}

		output.WriteString(line + "\n")
	}

	return output.String()
}

func renderLanguageBars(counts []roster.LanguageCount, width int) string {
	if len(counts) == 0 {
		return helpStyle.Render("No language data") + "\n"
	}
	peak := 0
	for _, c := range counts {
		if c.Count > peak {
			peak = c.Count
		}
	}
	barWidth := width - 16
	if barWidth < 4 {
		barWidth = 4
	}

	var b strings.Builder
	for _, c := range counts {
		n := c.Count * barWidth / peak
		if n == 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(chipColor).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%-10s %s %d\n", truncate(c.Language, 10), bar, c.Count)
	}
	return b.String()
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
