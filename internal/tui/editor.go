package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohare93/onboard/internal/roster"
	"gopkg.in/yaml.v3"
)

// EmployeeYAML is the editor representation of a record. Only status and
// notes are applied back.
type EmployeeYAML struct {
	Email      string `yaml:"email"`
	FullName   string `yaml:"full_name"`
	Department string `yaml:"department"`
	Position   string `yaml:"position"`
	Status     string `yaml:"status"`
	Notes      string `yaml:"notes"`
}

// employeeEdit is what an editor session may change
type employeeEdit struct {
	Status roster.Status
	Notes  string
}

// employeeToYAML renders a record for editing
func employeeToYAML(e roster.Employee) (string, error) {
	doc := EmployeeYAML{
		Email:      e.Email,
		FullName:   e.FullName,
		Department: e.Department,
		Position:   e.Position,
		Status:     string(e.Status),
		Notes:      e.Notes,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record to YAML: %w", err)
	}

	header := `# Edit the status and notes below
# status must be Active, Resigned, or Hidden
# email, full_name, department and position are read-only
# Save and close editor to apply changes

`
	return header + string(data), nil
}

// parseEmployeeEdit reads the editable fields back
func parseEmployeeEdit(content string) (employeeEdit, error) {
	var doc EmployeeYAML
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return employeeEdit{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	status, err := roster.ParseStatus(doc.Status)
	if err != nil {
		return employeeEdit{}, err
	}
	return employeeEdit{Status: status, Notes: strings.TrimRight(doc.Notes, "\n")}, nil
}

// editorResultMsg is the message returned after editor closes
type editorResultMsg struct {
	email      string
	editedYAML string
	cancelled  bool
	err        error
}

// editorCommand builds the process for $EDITOR, which may carry arguments
func editorCommand(path string) *exec.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	return exec.Command(parts[0], append(parts[1:], path)...)
}

// openEditorCmd opens $EDITOR on a YAML rendering of e
func openEditorCmd(e roster.Employee) tea.Cmd {
	content, err := employeeToYAML(e)
	if err != nil {
		return func() tea.Msg {
			return editorResultMsg{email: e.Email, err: err}
		}
	}

	tmpFile, err := os.CreateTemp("", "onboard-record-*.yaml")
	if err != nil {
		return func() tea.Msg {
			return editorResultMsg{email: e.Email, err: fmt.Errorf("failed to create temp file: %w", err)}
		}
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return func() tea.Msg {
			return editorResultMsg{email: e.Email, err: fmt.Errorf("failed to write temp file: %w", err)}
		}
	}
	tmpFile.Close()

	// tea.ExecProcess suspends the program while the editor owns the terminal
	return tea.ExecProcess(editorCommand(tmpPath), func(err error) tea.Msg {
		defer os.Remove(tmpPath)

		if err != nil {
			return editorResultMsg{email: e.Email, err: fmt.Errorf("editor failed: %w", err)}
		}

		edited, err := os.ReadFile(tmpPath)
		if err != nil {
			return editorResultMsg{email: e.Email, err: fmt.Errorf("failed to read edited file: %w", err)}
		}

		if string(edited) == content {
			return editorResultMsg{email: e.Email, cancelled: true}
		}
		return editorResultMsg{email: e.Email, editedYAML: string(edited)}
	})
}
