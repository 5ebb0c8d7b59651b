package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/router"
)

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress ctrl+c to quit", m.err))
	}

	switch m.router.View() {
	case router.ViewPortal:
		return m.renderPortalView()
	case router.ViewForm:
		if m.wizard == nil {
			return "No intake in progress"
		}
		return m.renderFormView()
	case router.ViewAdminLogin:
		return m.renderLoginView()
	case router.ViewCredentialGate:
		return m.renderGateView()
	case router.ViewDashboard:
		if m.focus == focusConfirm {
			return m.renderConfirmView()
		}
		return m.renderSplitView()
	case router.ViewSuccess:
		return m.renderSuccessView()
	default:
		return "Unknown view"
	}
}

func (m Model) renderPortalView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SmartOnboard") + "\n")
	b.WriteString("Welcome aboard. Choose where to go.\n\n")

	card := panelBorderStyle.Padding(1, 2).Width(36)
	employee := card.Render(labelStyle.Render("[1] New hire") + "\n\nFill in your onboarding details")
	admin := card.Render(labelStyle.Render("[2] HR admin") + "\n\nReview the roster and insights")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, employee, " ", admin) + "\n\n")

	b.WriteString(helpStyle.Render("1/f intake • 2/a admin • q quit\n"))

	if m.message != "" {
		b.WriteString("\n" + messageStyle.Render(m.message))
	}
	return b.String()
}

func (m Model) renderLoginView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("HR admin sign-in") + "\n")
	b.WriteString("Enter the admin access code.\n\n")
	b.WriteString(m.codeInput.View() + "\n")

	if m.router.LoginError() {
		b.WriteString("\n" + errorStyle.Render("Incorrect code, try again") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter sign in • esc back to portal\n"))
	return b.String()
}

func (m Model) renderGateView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Connect the insight service") + "\n")
	b.WriteString("The dashboard needs an API key for the narrative service.\n")
	b.WriteString("Paste a key below; it is stored in your onboard config.\n\n")
	b.WriteString(m.keyInput.View() + "\n")

	if m.gateErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.gateErr) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter save key • esc back to portal\n"))
	return b.String()
}

func (m Model) renderSuccessView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("✓ Submission received") + "\n")
	if e, ok := m.router.Submission(); ok {
		fmt.Fprintf(&b, "Thank you, %s. Your onboarding details were saved.\n\n", e.FullName)
		b.WriteString(renderField("Department", e.Department))
		b.WriteString(renderField("Position", e.Position))
		b.WriteString(renderField("Start date", e.StartDate))
		if e.ID != "" {
			b.WriteString(renderField("Reference", e.ID))
		}
	} else {
		b.WriteString("Your onboarding details were saved.\n")
	}

	b.WriteString("\n" + helpStyle.Render("enter back to portal\n"))
	return b.String()
}
