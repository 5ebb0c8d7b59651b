// Package router holds the application's view state. Exactly one view is
// active at a time; the Dashboard is only reachable through AdminLogin, and
// a finished intake hands its record to the Success view as a one-shot
// payload.
package router

import (
	"errors"
	"fmt"

	"github.com/ohare93/onboard/internal/roster"
)

// DefaultCode is the shared admin code
const DefaultCode = "2026"

// ErrForbidden is returned for a view that cannot be opened directly
var ErrForbidden = errors.New("view cannot be opened directly")

// View identifies the active screen
type View int

const (
	ViewPortal View = iota
	ViewForm
	ViewAdminLogin
	ViewCredentialGate
	ViewDashboard
	ViewSuccess
)

func (v View) String() string {
	switch v {
	case ViewPortal:
		return "portal"
	case ViewForm:
		return "form"
	case ViewAdminLogin:
		return "admin-login"
	case ViewCredentialGate:
		return "credential-gate"
	case ViewDashboard:
		return "dashboard"
	case ViewSuccess:
		return "success"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Capability reports whether the review backend can be used
type Capability interface {
	Ready() bool
}

// Router is the view state machine
type Router struct {
	view View
	code string
	cap  Capability

	input    string
	loginErr bool

	submission *roster.Employee
}

// New creates a router on the Portal. An empty code uses DefaultCode; a nil
// capability is always ready.
func New(code string, capability Capability) *Router {
	if code == "" {
		code = DefaultCode
	}
	return &Router{view: ViewPortal, code: code, cap: capability}
}

// View returns the active view
func (r *Router) View() View {
	return r.view
}

// Open navigates to the Portal from anywhere, and to the Form or AdminLogin
// from the Portal only
func (r *Router) Open(v View) error {
	switch v {
	case ViewPortal:
		r.Home()
	case ViewForm:
		if r.view != ViewPortal {
			return fmt.Errorf("%w: %s from %s", ErrForbidden, v, r.view)
		}
		r.enter(ViewForm)
	case ViewAdminLogin:
		if r.view != ViewPortal {
			return fmt.Errorf("%w: %s from %s", ErrForbidden, v, r.view)
		}
		r.enter(ViewAdminLogin)
		r.input = ""
		r.loginErr = false
	default:
		return fmt.Errorf("%w: %s", ErrForbidden, v)
	}
	return nil
}

// Home returns to the Portal
func (r *Router) Home() {
	r.enter(ViewPortal)
}

// enter switches views. Leaving Success drops an unclaimed payload.
func (r *Router) enter(v View) {
	if r.view == ViewSuccess && v != ViewSuccess {
		r.submission = nil
	}
	r.view = v
}

// Input returns the code typed so far
func (r *Router) Input() string {
	return r.input
}

// LoginError reports whether the last attempt failed and nothing was typed since
func (r *Router) LoginError() bool {
	return r.loginErr
}

// TypeCode replaces the typed code and clears the error flag
func (r *Router) TypeCode(s string) {
	if r.view != ViewAdminLogin {
		return
	}
	r.input = s
	r.loginErr = false
}

// Login checks the typed code
func (r *Router) Login() bool {
	return r.Authenticate(r.input)
}

// Authenticate compares code with the shared code. On success the router
// moves to the Dashboard, or to the CredentialGate when the backend is not
// ready. On failure the input is cleared and the error flag set.
func (r *Router) Authenticate(code string) bool {
	if r.view != ViewAdminLogin {
		return false
	}
	if code != r.code {
		r.input = ""
		r.loginErr = true
		return false
	}
	r.input = ""
	r.loginErr = false
	if r.cap != nil && !r.cap.Ready() {
		r.enter(ViewCredentialGate)
	} else {
		r.enter(ViewDashboard)
	}
	return true
}

// CapabilityConfirmed moves from the CredentialGate to the Dashboard once
// the backend is ready
func (r *Router) CapabilityConfirmed() bool {
	if r.view != ViewCredentialGate {
		return false
	}
	if r.cap != nil && !r.cap.Ready() {
		return false
	}
	r.enter(ViewDashboard)
	return true
}

// Cancel backs out of the current view to the Portal
func (r *Router) Cancel() {
	switch r.view {
	case ViewAdminLogin, ViewCredentialGate, ViewForm, ViewDashboard:
		r.input = ""
		r.loginErr = false
		r.enter(ViewPortal)
	}
}

// Submitted moves from the Form to Success carrying e
func (r *Router) Submitted(e roster.Employee) bool {
	if r.view != ViewForm {
		return false
	}
	c := e.Clone()
	r.submission = &c
	r.enter(ViewSuccess)
	return true
}

// Submission returns the payload of the Form to Success transition while
// Success is showing, without claiming it
func (r *Router) Submission() (roster.Employee, bool) {
	if r.submission == nil || r.view != ViewSuccess {
		return roster.Employee{}, false
	}
	return r.submission.Clone(), true
}

// TakeSubmission returns the payload of the last Form to Success
// transition. It yields the record once.
func (r *Router) TakeSubmission() (roster.Employee, bool) {
	if r.submission == nil || r.view != ViewSuccess {
		return roster.Employee{}, false
	}
	e := *r.submission
	r.submission = nil
	return e, true
}

// Acknowledge leaves Success for the Portal
func (r *Router) Acknowledge() {
	if r.view == ViewSuccess {
		r.enter(ViewPortal)
	}
}
