package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/intake"
)

// currentField returns the spec under the form cursor
func (m Model) currentField() intake.FieldSpec {
	fields := intake.FieldsFor(m.wizard.Step())
	if m.formCursor < 0 || m.formCursor >= len(fields) {
		return fields[0]
	}
	return fields[m.formCursor]
}

// focusFormField loads the field under the cursor into the editing widgets
func (m *Model) focusFormField() tea.Cmd {
	spec := m.currentField()
	m.chipCursor = 0
	if spec.IsText() {
		m.formInput.SetValue(m.wizard.Value(spec.Field))
		m.formInput.Placeholder = spec.Placeholder
		m.formInput.CursorEnd()
		return m.formInput.Focus()
	}
	m.formInput.Blur()
	if spec.Kind == intake.KindChoice {
		for i, o := range spec.Options {
			if o == m.wizard.Value(spec.Field) {
				m.chipCursor = i
			}
		}
	}
	return nil
}

// commitFormInput copies the text widget into the wizard
func (m *Model) commitFormInput() {
	spec := m.currentField()
	if !spec.IsText() {
		return
	}
	if err := m.wizard.Set(spec.Field, m.formInput.Value()); err != nil {
		m.formErr = err.Error()
	}
}

// moveFormCursor moves focus within the step, wrapping at the ends
func (m Model) moveFormCursor(delta int) (tea.Model, tea.Cmd) {
	m.commitFormInput()
	n := len(intake.FieldsFor(m.wizard.Step()))
	m.formCursor = ((m.formCursor+delta)%n + n) % n
	cmd := m.focusFormField()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	spec := m.currentField()

	switch msg.String() {
	case "esc":
		m.formInput.Blur()
		m.router.Cancel()
		m.wizard = nil
		m.message = "Intake discarded"
		return m, nil

	case "tab", "down":
		return m.moveFormCursor(1)

	case "shift+tab", "up":
		return m.moveFormCursor(-1)

	case "ctrl+n", "pgdown":
		return m.advanceForm()

	case "ctrl+b", "pgup":
		m.commitFormInput()
		if m.wizard.Back() {
			m.formCursor = 0
			m.formErr = ""
			cmd := m.focusFormField()
			return m, cmd
		}
		return m, nil

	case "ctrl+s":
		if m.wizard.Step() == intake.LastStep {
			return m.submitForm()
		}
		m.formErr = "Finish every step before submitting"
		return m, nil

	case "enter":
		if m.formCursor == len(intake.FieldsFor(m.wizard.Step()))-1 {
			return m.advanceForm()
		}
		return m.moveFormCursor(1)
	}

	switch spec.Kind {
	case intake.KindChoice:
		switch msg.String() {
		case "left", "h":
			return m.cycleChoice(spec, -1)
		case "right", "l", " ":
			return m.cycleChoice(spec, 1)
		}
		return m, nil

	case intake.KindToggle:
		switch msg.String() {
		case "left", "h":
			if m.chipCursor > 0 {
				m.chipCursor--
			}
		case "right", "l":
			if m.chipCursor < len(spec.Options)-1 {
				m.chipCursor++
			}
		case " ", "x":
			if _, err := m.wizard.Toggle(spec.Field, spec.Options[m.chipCursor]); err != nil {
				m.formErr = err.Error()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formInput, cmd = m.formInput.Update(msg)
	m.formErr = ""
	m.commitFormInput()
	return m, cmd
}

func (m Model) cycleChoice(spec intake.FieldSpec, delta int) (tea.Model, tea.Cmd) {
	n := len(spec.Options)
	m.chipCursor = ((m.chipCursor+delta)%n + n) % n
	if err := m.wizard.Set(spec.Field, spec.Options[m.chipCursor]); err != nil {
		m.formErr = err.Error()
	}
	return m, nil
}

// advanceForm moves to the next step, or submits from the last one
func (m Model) advanceForm() (tea.Model, tea.Cmd) {
	m.commitFormInput()
	if m.wizard.Step() == intake.LastStep {
		return m.submitForm()
	}
	if !m.wizard.Next() {
		m.formErr = describeIssues(m.wizard.Issues())
		return m, nil
	}
	m.formErr = ""
	m.formCursor = 0
	cmd := m.focusFormField()
	return m, cmd
}

func describeIssues(issues []intake.Issue) string {
	if len(issues) == 0 {
		return ""
	}
	parts := make([]string, len(issues))
	for i, is := range issues {
		label := string(is.Field)
		if spec, ok := intake.Lookup(is.Field); ok {
			label = spec.Label
		}
		parts[i] = fmt.Sprintf("%s %s", label, is.Message)
	}
	return strings.Join(parts, "; ")
}

func (m Model) renderFormView() string {
	var b strings.Builder

	step := m.wizard.Step()
	b.WriteString(titleStyle.Render("New hire onboarding") + "\n")
	b.WriteString(renderStepper(step) + "\n\n")

	for i, spec := range intake.FieldsFor(step) {
		focused := i == m.formCursor
		marker := "  "
		if focused {
			marker = lipgloss.NewStyle().Foreground(accentColor).Render("▸ ")
		}
		label := spec.Label
		if spec.Required {
			label += " *"
		}
		b.WriteString(marker + labelStyle.Render(label) + "\n")
		b.WriteString("    " + m.renderFormValue(spec, focused) + "\n")
	}

	if m.formErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.formErr) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/↑↓ field • ←→ choose • space toggle • enter next\n"))
	if step == intake.LastStep {
		b.WriteString(helpStyle.Render("ctrl+s submit • ctrl+b back • esc discard\n"))
	} else if step == intake.StepIdentity {
		b.WriteString(helpStyle.Render("ctrl+n next step • esc discard\n"))
	} else {
		b.WriteString(helpStyle.Render("ctrl+n next step • ctrl+b back • esc discard\n"))
	}
	return b.String()
}

func (m Model) renderFormValue(spec intake.FieldSpec, focused bool) string {
	switch spec.Kind {
	case intake.KindChoice:
		current := m.wizard.Value(spec.Field)
		var parts []string
		for _, o := range spec.Options {
			name := o
			if name == "" {
				name = "not set"
			}
			if o == current {
				parts = append(parts, chipStyle.Render(name))
			} else if focused {
				parts = append(parts, mutedChipStyle.Render(name))
			}
		}
		return strings.Join(parts, " ")

	case intake.KindToggle:
		selected := make(map[string]bool)
		for _, s := range m.wizard.Selected(spec.Field) {
			selected[s] = true
		}
		var parts []string
		for i, o := range spec.Options {
			style := mutedChipStyle
			if selected[o] {
				style = chipStyle
			}
			chip := style.Render(o)
			if focused && i == m.chipCursor {
				chip = lipgloss.NewStyle().Underline(true).Render("[") + chip + lipgloss.NewStyle().Underline(true).Render("]")
			}
			parts = append(parts, chip)
		}
		return strings.Join(parts, " ")
	}

	if focused {
		return m.formInput.View()
	}
	v := m.wizard.Value(spec.Field)
	if v == "" {
		return helpStyle.Render(spec.Placeholder)
	}
	return v
}

func renderStepper(current intake.Step) string {
	var parts []string
	for s := intake.StepIdentity; s <= intake.LastStep; s++ {
		label := fmt.Sprintf("%d %s", int(s), s)
		switch {
		case s == current:
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(label))
		case s < current:
			parts = append(parts, messageStyle.Render("✓ "+s.String()))
		default:
			parts = append(parts, helpStyle.Render(label))
		}
	}
	return strings.Join(parts, helpStyle.Render("  ›  "))
}
