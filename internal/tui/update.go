package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohare93/onboard/internal/intake"
	"github.com/ohare93/onboard/internal/router"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.router.View() {
		case router.ViewPortal:
			return m.handlePortalKey(msg)
		case router.ViewForm:
			return m.handleFormKey(msg)
		case router.ViewAdminLogin:
			return m.handleLoginKey(msg)
		case router.ViewCredentialGate:
			return m.handleGateKey(msg)
		case router.ViewDashboard:
			return m.handleDashboardKey(msg)
		case router.ViewSuccess:
			return m.handleSuccessKey(msg)
		}
		return m, nil

	case insightMsg:
		if !m.flow.ResolveInsight(msg.result) {
			m.log.Debug("discarded stale insight", "email", msg.result.Email, "seq", msg.result.Seq)
		}
		return m, nil

	case strategyMsg:
		if !m.flow.ResolveStrategy(msg.result) {
			m.log.Debug("discarded stale strategy", "seq", msg.result.Seq)
		}
		return m, nil

	case spinner.TickMsg:
		// Let the tick loop die once nothing is pending
		if !m.flow.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notesSavedMsg:
		m.flow.NotesSaved(msg.token)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn("clipboard copy failed", "err", msg.err)
			m.message = "Copy failed: " + msg.err.Error()
			return m, nil
		}
		return m, clearCopiedCmd(m.flow.MarkCopied(msg.target))

	case clearCopiedMsg:
		m.flow.ClearCopied(msg.token)
		return m, nil

	case editorResultMsg:
		return m.handleEditorResult(msg)

	case watcherEventMsg:
		return m.handleStoreChanged()

	case watcherErrorMsg:
		m.log.Warn("watcher error", "err", msg.err)
		if m.fileWatcher != nil {
			return m, listenForWatcherEvents(m.fileWatcher)
		}
		return m, nil
	}

	return m, nil
}

// handleStoreChanged reloads the roster after an external write
func (m Model) handleStoreChanged() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.fileWatcher != nil {
		cmds = append(cmds, listenForWatcherEvents(m.fileWatcher))
	}

	changed, err := m.store.Reload()
	if err != nil {
		// Keep the in-memory roster; a writer may be mid-replace
		m.log.Warn("reload failed, keeping current roster", "err", err)
		return m, tea.Batch(cmds...)
	}
	if changed {
		m.flow.Sync()
		m.clampCursor()
		m.message = "Roster reloaded"
		if m.router.View() == router.ViewDashboard {
			cmds = append(cmds, m.observeCount())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handlePortalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "f", "1":
		return m.openForm()
	case "a", "2":
		return m.openLogin()
	}
	return m, nil
}

// openForm starts a fresh intake
func (m Model) openForm() (tea.Model, tea.Cmd) {
	if err := m.router.Open(router.ViewForm); err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.wizard = intake.New(intake.Options{EmailTaken: m.store.Contains})
	m.formErr = ""
	m.formCursor = 0
	m.chipCursor = 0
	cmd := m.focusFormField()
	return m, cmd
}

func (m Model) openLogin() (tea.Model, tea.Cmd) {
	if err := m.router.Open(router.ViewAdminLogin); err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.codeInput.SetValue("")
	cmd := m.codeInput.Focus()
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.codeInput.Blur()
		m.router.Cancel()
		return m, nil
	case "enter":
		if !m.router.Login() {
			m.codeInput.SetValue("")
			return m, nil
		}
		m.codeInput.Blur()
		return m.enterAfterLogin()
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	m.router.TypeCode(m.codeInput.Value())
	return m, cmd
}

// enterAfterLogin prepares whichever view the code check led to
func (m Model) enterAfterLogin() (tea.Model, tea.Cmd) {
	if m.router.View() == router.ViewCredentialGate {
		m.gateErr = ""
		m.keyInput.SetValue("")
		cmd := m.keyInput.Focus()
		return m, cmd
	}
	return m.enterDashboard()
}

func (m Model) handleGateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.keyInput.Blur()
		m.router.Cancel()
		return m, nil
	case "enter":
		if m.gate != nil {
			if err := m.gate.Provide(m.keyInput.Value()); err != nil {
				m.gateErr = err.Error()
				return m, nil
			}
		}
		if !m.router.CapabilityConfirmed() {
			m.gateErr = "The key was not accepted"
			return m, nil
		}
		m.keyInput.SetValue("")
		m.keyInput.Blur()
		m.log.Info("narrative credential configured")
		return m.enterDashboard()
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	m.gateErr = ""
	return m, cmd
}

func (m Model) handleSuccessKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ", "q":
		m.router.Acknowledge()
	}
	return m, nil
}

// submitForm hands the finished record to the store and the Success view
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.commitFormInput()
	e, err := m.wizard.Submit()
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	m.store.Append(e)
	m.router.Submitted(e)
	m.formInput.Blur()
	m.log.Info("intake submitted", "email", e.Email, "id", e.ID)
	m.message = fmt.Sprintf("Saved %s", e.FullName)
	return m, nil
}
