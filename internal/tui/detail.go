package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/review"
	"github.com/ohare93/onboard/internal/roster"
)

func renderEmployeeDetail(e roster.Employee) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", e.FullName, e.Position)) + "\n")

	status := lipgloss.NewStyle().Foreground(statusColor(e.Status)).Bold(true).Render(string(e.Status))
	b.WriteString(renderField("Status", status))
	b.WriteString(renderField("Department", e.Department))
	b.WriteString(renderField("Email", e.Email))
	b.WriteString(renderField("Phone", e.Phone))
	b.WriteString(renderField("Start date", e.StartDate))
	b.WriteString(renderField("Experience", fmt.Sprintf("%g year%s", e.TotalExperienceYears, pluralize(e.TotalExperienceYears))))
	b.WriteString(renderField("Education", strings.TrimSpace(e.Education+" · "+e.Major)))
	if e.MBTI != "" {
		b.WriteString(renderField("MBTI", e.MBTI))
	}
	b.WriteString(renderField("Work style", string(e.WorkStyle)))
	if len(e.Languages) > 0 {
		b.WriteString(renderField("Languages", strings.Join(e.Languages, ", ")))
	}
	if len(e.TopSkills) > 0 {
		b.WriteString(renderField("Skills", strings.Join(e.TopSkills, ", ")))
	}
	if e.Expectations != "" {
		b.WriteString(renderField("Expectations", e.Expectations))
	}
	emergency := fmt.Sprintf("%s (%s) %s", e.EmergencyContactName, e.EmergencyContactRelation, e.EmergencyContactPhone)
	b.WriteString(renderField("Emergency", emergency))

	return b.String()
}

func (m Model) renderInsight() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Insight") + "\n")

	if m.flow.Busy() {
		b.WriteString(m.spinner.View() + " Analysing...\n")
		return b.String()
	}
	insight, ok := m.flow.Insight()
	if !ok {
		b.WriteString(helpStyle.Render("Press r to analyse") + "\n")
		return b.String()
	}
	if m.flow.InsightDegraded() {
		b.WriteString(warningStyle.Render("(offline fallback)") + "\n")
	}
	b.WriteString(renderField("Talent", insight.TalentSummary))
	b.WriteString(renderField("Fit", insight.StrategicFit))
	b.WriteString(renderField("Advice", insight.OnboardingAdvice))
	if m.flow.Copied() == review.CopyInsight {
		b.WriteString(messageStyle.Render("✓ Copied") + "\n")
	}
	return b.String()
}

func (m Model) renderNotes() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Notes") + " ")
	switch m.flow.SaveState() {
	case review.SaveSaving:
		b.WriteString(warningStyle.Render("saving..."))
	case review.SaveSaved:
		b.WriteString(messageStyle.Render("✓ saved"))
	default:
		if m.flow.DraftDirty() {
			b.WriteString(helpStyle.Render("unsaved"))
		}
	}
	b.WriteString("\n")

	if m.focus == focusNotes {
		b.WriteString(m.notes.View() + "\n")
		b.WriteString(helpStyle.Render("ctrl+s save • esc done") + "\n")
		return b.String()
	}
	draft := m.flow.Draft()
	if draft == "" {
		draft = helpStyle.Render("No notes. Press n to write some.")
	}
	b.WriteString(draft + "\n")
	return b.String()
}

func renderField(name, value string) string {
	return fmt.Sprintf("%s: %s\n", labelStyle.Render(name), value)
}

func pluralize(n float64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
