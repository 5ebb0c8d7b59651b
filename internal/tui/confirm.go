package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderConfirmView() string {
	if m.confirm == nil {
		return "Nothing to confirm"
	}

	var b strings.Builder

	heading := "⚠️  DELETE RECORD"
	if m.confirm.kind == confirmReset {
		heading = "⚠️  RESTORE SAMPLE DATA"
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("1")). // Red
		Render(heading)
	b.WriteString(title + "\n\n")

	if m.confirm.kind == confirmDelete {
		b.WriteString(renderField("Name", m.confirm.name))
		b.WriteString(renderField("Email", m.confirm.email))
		b.WriteString("\n")
	}

	b.WriteString(warningStyle.Render(m.confirm.prompt) + "\n\n")

	prompt := lipgloss.NewStyle().
		Bold(true).
		Render("Continue? [y/N]")
	b.WriteString(prompt + "\n\n")

	help := lipgloss.NewStyle().
		Faint(true).
		Render("y = confirm | n/Esc = cancel")
	b.WriteString(help)

	return b.String()
}
