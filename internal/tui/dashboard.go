package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohare93/onboard/internal/review"
	"github.com/ohare93/onboard/internal/roster"
)

// enterDashboard shows the review flow and refreshes the strategy if the
// roster size changed since the last visit
func (m Model) enterDashboard() (tea.Model, tea.Cmd) {
	m.focus = focusRoster
	m.confirm = nil
	m.clampCursor()
	return m, m.observeCount()
}

// observeCount issues a strategy request when the roster size changed
func (m Model) observeCount() tea.Cmd {
	req, ok := m.flow.ObserveCount()
	if !ok {
		return nil
	}
	m.log.Debug("requesting strategy", "seq", req.Seq, "records", len(req.Employees))
	return runStrategy(m.narrator, req)
}

// startAnalysis runs an analysis request with the spinner going
func (m Model) startAnalysis(req review.AnalysisRequest) tea.Cmd {
	m.log.Debug("requesting insight", "email", req.Employee.Email, "seq", req.Seq)
	return tea.Batch(runAnalysis(m.narrator, req), m.spinner.Tick)
}

// clampCursor keeps the roster cursor on a visible row
func (m *Model) clampCursor() {
	n := len(m.flow.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// rowUnderCursor returns the visible record under the cursor
func (m Model) rowUnderCursor() (roster.Employee, bool) {
	visible := m.flow.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return roster.Employee{}, false
	}
	return visible[m.cursor], true
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusConfirm:
		return m.handleConfirmKey(msg)
	case focusNotes:
		return m.handleNotesKey(msg)
	}

	m.message = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		m.flow.Deselect()
		m.router.Cancel()
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.flow.Visible())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		e, ok := m.rowUnderCursor()
		if !ok {
			return m, nil
		}
		req, ok := m.flow.Select(e.Email)
		if !ok {
			return m, nil
		}
		m.notes.SetValue(m.flow.Draft())
		return m, m.startAnalysis(req)

	case "r":
		req, ok := m.flow.Reanalyze()
		if !ok {
			m.message = "Select a record first"
			return m, nil
		}
		return m, m.startAnalysis(req)

	case "d", "D":
		delta := 1
		if msg.String() == "D" {
			delta = -1
		}
		m.flow.CycleDepartment(delta)
		m.cursor = 0
		return m, nil

	case "s", "S":
		delta := 1
		if msg.String() == "S" {
			delta = -1
		}
		m.flow.CycleStatus(delta)
		m.cursor = 0
		return m, nil

	case "1", "2", "3":
		return m.moveSelectedStatus(roster.Statuses[int(msg.String()[0]-'1')])

	case "x":
		e, ok := m.rowUnderCursor()
		if !ok {
			return m, nil
		}
		m.confirm = &pendingConfirm{kind: confirmDelete, email: e.Email, name: e.FullName, prompt: roster.DeletePrompt}
		m.focus = focusConfirm
		return m, nil

	case "R":
		m.confirm = &pendingConfirm{kind: confirmReset, prompt: roster.ResetPrompt}
		m.focus = focusConfirm
		return m, nil

	case "n":
		if _, ok := m.flow.Selected(); !ok {
			m.message = "Select a record first"
			return m, nil
		}
		m.focus = focusNotes
		m.notes.SetValue(m.flow.Draft())
		cmd := m.notes.Focus()
		return m, cmd

	case "c":
		return m.copy(review.CopyStrategy)

	case "C":
		return m.copy(review.CopyInsight)

	case "e":
		e, ok := m.flow.Selected()
		if !ok {
			m.message = "Select a record first"
			return m, nil
		}
		return m, openEditorCmd(e)
	}
	return m, nil
}

func (m Model) moveSelectedStatus(status roster.Status) (tea.Model, tea.Cmd) {
	e, ok := m.flow.Selected()
	if !ok {
		m.message = "Select a record first"
		return m, nil
	}
	if n := m.flow.MoveStatus(e.Email, status); n > 0 {
		m.message = fmt.Sprintf("%s is now %s", e.FullName, status)
	}
	m.clampCursor()
	return m, nil
}

func (m Model) copy(target review.CopyTarget) (tea.Model, tea.Cmd) {
	text, ok := m.flow.CopyText(target)
	if !ok {
		m.message = "Nothing to copy yet"
		return m, nil
	}
	return m, copyCmd(m.clip, text, target)
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.notes.Blur()
		m.focus = focusRoster
		return m, nil
	case "ctrl+s":
		token, ok := m.flow.SaveNotes()
		if !ok {
			m.notes.Blur()
			m.focus = focusRoster
			m.message = "Record no longer exists"
			return m, nil
		}
		m.notes.SetValue(m.flow.Draft())
		return m, notesSavedCmd(token)
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	m.flow.SetDraft(m.notes.Value())
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	switch msg.String() {
	case "y", "Y":
		m.confirm = nil
		m.focus = focusRoster
		switch pending.kind {
		case confirmDelete:
			n, _ := m.flow.Delete(pending.email, roster.Answer(true))
			m.message = fmt.Sprintf("Deleted %d record(s)", n)
		case confirmReset:
			m.flow.Reset(roster.Answer(true))
			m.message = "Sample dataset restored"
		}
		m.clampCursor()
		return m, m.observeCount()

	case "n", "N", "esc":
		m.confirm = nil
		m.focus = focusRoster
		m.message = "Cancelled"
		return m, nil
	}
	return m, nil
}

func (m Model) handleEditorResult(msg editorResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.message = "Edit failed: " + msg.err.Error()
		return m, nil
	}
	if msg.cancelled {
		m.message = "Edit cancelled"
		return m, nil
	}

	edit, err := parseEmployeeEdit(msg.editedYAML)
	if err != nil {
		m.message = "Edit failed: " + err.Error()
		return m, nil
	}

	e, ok := m.flow.Selected()
	if !ok || e.Email != msg.email {
		m.message = "Record no longer selected"
		return m, nil
	}

	var cmd tea.Cmd
	if edit.Status != e.Status {
		m.flow.MoveStatus(e.Email, edit.Status)
	}
	if edit.Notes != e.Notes {
		m.flow.SetDraft(edit.Notes)
		if token, ok := m.flow.SaveNotes(); ok {
			cmd = notesSavedCmd(token)
		}
		m.notes.SetValue(m.flow.Draft())
	}
	m.clampCursor()
	m.message = "Record updated"
	return m, cmd
}
