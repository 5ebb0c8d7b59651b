package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/review"
)

const (
	leftPanelRatio = 0.5
	minLeftWidth   = 44
	minRightWidth  = 36
	defaultWidth   = 120
)

func (m Model) renderSplitView() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	leftWidth := int(float64(width) * leftPanelRatio)
	rightWidth := width - leftWidth - 4 // Account for borders

	// Enforce minimum widths
	if leftWidth < minLeftWidth {
		leftWidth = minLeftWidth
		rightWidth = width - leftWidth - 4
	}
	if rightWidth < minRightWidth {
		rightWidth = minRightWidth
	}

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderStatsPanel(leftWidth-2),
		m.renderRosterPanel(leftWidth-2),
	)
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderDetailPanel(rightWidth-2),
		m.renderStrategyPanel(rightWidth-2),
	)

	rosterBorder := activePanelBorderStyle
	detailBorder := panelBorderStyle
	if m.focus == focusNotes {
		rosterBorder, detailBorder = panelBorderStyle, activePanelBorderStyle
	}

	topRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		rosterBorder.Width(leftWidth).Render(left),
		detailBorder.Width(rightWidth).Render(right),
	)

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("HR dashboard"), topRow, m.renderStatusBar())
}

func (m Model) renderStatsPanel(width int) string {
	sum := m.flow.Summary()
	filter := m.flow.Filter()

	var b strings.Builder
	counts := fmt.Sprintf("%s %d   %s %d   %s %d",
		lipgloss.NewStyle().Foreground(activeColor).Render("Active"), sum.Active,
		lipgloss.NewStyle().Foreground(resignedColor).Render("Resigned"), sum.Resigned,
		lipgloss.NewStyle().Foreground(hiddenColor).Render("Hidden"), sum.Hidden,
	)
	b.WriteString(counts + "\n")
	b.WriteString(renderField("Filter", fmt.Sprintf("%s / %s", filter.Department, filter.Status)))
	b.WriteString(renderField("Showing", fmt.Sprintf("%d of %d", sum.Visible, m.store.Len())))
	b.WriteString(renderField("Avg experience", fmt.Sprintf("%.1f years", sum.AverageExperience)))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Languages") + "\n")
	b.WriteString(renderLanguageBars(sum.Languages, width))
	return b.String()
}

func (m Model) renderRosterPanel(width int) string {
	visible := m.flow.Visible()
	if len(visible) == 0 {
		return "\n" + helpStyle.Render("No records match the filter") + "\n"
	}
	selectedEmail := ""
	if sel, ok := m.flow.Selected(); ok {
		selectedEmail = sel.Email
	}
	return "\n" + renderRosterList(visible, m.cursor, selectedEmail, width)
}

func (m Model) renderDetailPanel(width int) string {
	sel, ok := m.flow.Selected()
	if !ok {
		return helpStyle.Render("Select a record with enter to see details") + "\n"
	}
	var b strings.Builder
	b.WriteString(renderEmployeeDetail(sel))
	b.WriteString("\n" + m.renderNotes())
	b.WriteString("\n" + m.renderInsight())
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m Model) renderStrategyPanel(width int) string {
	var b strings.Builder
	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Talent strategy"))
	if m.flow.Copied() == review.CopyStrategy {
		b.WriteString(" " + messageStyle.Render("✓ Copied"))
	}
	b.WriteString("\n")

	text, ready := m.flow.Strategy()
	switch {
	case !ready && m.store.Len() == 0:
		b.WriteString(helpStyle.Render("No records to summarise") + "\n")
	case !ready:
		b.WriteString(helpStyle.Render("Generating strategy...") + "\n")
	default:
		if m.flow.StrategyDegraded() {
			b.WriteString(warningStyle.Render("(offline fallback)") + "\n")
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Render(text) + "\n")
	}
	return b.String()
}

// renderStatusBar renders the bottom status bar with key hints or a message
func (m Model) renderStatusBar() string {
	if m.message != "" {
		return messageStyle.Render(m.message)
	}
	return helpStyle.Render("↑↓ move • enter select • d/s filter • 1/2/3 active/resigned/hidden • n notes • r re-run • e edit • c/C copy • x delete • R reset • esc sign out")
}
