package tui

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ohare93/onboard/internal/roster"
)

func TestEmployeeToYAML(t *testing.T) {
	tests := []struct {
		name     string
		employee roster.Employee
		contains []string
	}{
		{
			name: "basic record",
			employee: roster.Employee{
				Email:      "ada@x.com",
				FullName:   "Ada Lovelace",
				Department: "Engineering",
				Position:   "Analyst",
				Status:     roster.StatusActive,
			},
			contains: []string{
				"email: ada@x.com",
				"full_name: Ada Lovelace",
				"department: Engineering",
				"status: Active",
			},
		},
		{
			name: "record with notes",
			employee: roster.Employee{
				Email:  "grace@x.com",
				Status: roster.StatusResigned,
				Notes:  "Left for a startup",
			},
			contains: []string{
				"status: Resigned",
				"notes: Left for a startup",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := employeeToYAML(tt.employee)
			if err != nil {
				t.Fatalf("employeeToYAML() error = %v", err)
			}

			if !strings.HasPrefix(result, "# Edit the status and notes below") {
				t.Error("employeeToYAML() should start with the edit header")
			}
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("employeeToYAML() result should contain %q, got:\n%s", want, result)
				}
			}
		})
	}
}

func TestParseEmployeeEdit_ValidInput(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus roster.Status
		wantNotes  string
	}{
		{
			name: "status only",
			content: `
email: ada@x.com
status: Hidden
`,
			wantStatus: roster.StatusHidden,
		},
		{
			name: "lowercase status",
			content: `
status: resigned
notes: moved abroad
`,
			wantStatus: roster.StatusResigned,
			wantNotes:  "moved abroad",
		},
		{
			name: "multi-line notes lose trailing newline",
			content: `
status: Active
notes: |
  first line
  second line
`,
			wantStatus: roster.StatusActive,
			wantNotes:  "first line\nsecond line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit, err := parseEmployeeEdit(tt.content)
			if err != nil {
				t.Fatalf("parseEmployeeEdit() error = %v", err)
			}
			if edit.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", edit.Status, tt.wantStatus)
			}
			if edit.Notes != tt.wantNotes {
				t.Errorf("Notes = %q, want %q", edit.Notes, tt.wantNotes)
			}
		})
	}
}

func TestParseEmployeeEdit_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "invalid status",
			content:     "status: Retired\n",
			errContains: "invalid status",
		},
		{
			name:        "missing status",
			content:     "notes: hello\n",
			errContains: "invalid status",
		},
		{
			name:        "malformed yaml",
			content:     `{{{not valid yaml`,
			errContains: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseEmployeeEdit(tt.content)
			if err == nil {
				t.Fatal("parseEmployeeEdit() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("parseEmployeeEdit() error = %q, should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestEmployeeYAML_RoundTrip(t *testing.T) {
	original := roster.Employee{
		Email:    "ada@x.com",
		FullName: "Ada Lovelace",
		Status:   roster.StatusHidden,
		Notes:    "Excellent reviewer",
	}

	content, err := employeeToYAML(original)
	if err != nil {
		t.Fatalf("employeeToYAML() error = %v", err)
	}
	edit, err := parseEmployeeEdit(content)
	if err != nil {
		t.Fatalf("parseEmployeeEdit() error = %v", err)
	}
	if edit.Status != original.Status || edit.Notes != original.Notes {
		t.Errorf("round trip = %+v, want status %s notes %q", edit, original.Status, original.Notes)
	}
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("EDITOR", "code --wait")
	cmd := editorCommand("/tmp/x.yaml")
	if got := strings.Join(cmd.Args, " "); got != "code --wait /tmp/x.yaml" {
		t.Errorf("editorCommand args = %q", got)
	}

	os.Unsetenv("EDITOR")
	cmd = editorCommand("/tmp/x.yaml")
	if cmd.Args[0] != "vi" {
		t.Errorf("expected vi fallback, got %q", cmd.Args[0])
	}
}

func TestHandleEditorResult_Error(t *testing.T) {
	m, h := newTestModel(t, nil)

	m, _ = send(t, m, editorResultMsg{email: mingEmail, err: errors.New("editor crashed")})
	if !strings.Contains(m.message, "editor crashed") {
		t.Errorf("message should carry the error: got %q", m.message)
	}
	if got, _ := h.store.Find(mingEmail); got.Status != roster.StatusActive {
		t.Error("record should be untouched on error")
	}
}

func TestHandleEditorResult_ParseError(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = send(t, m, editorResultMsg{email: mingEmail, editedYAML: "status: Sleeping\n"})
	if !strings.HasPrefix(m.message, "Edit failed") {
		t.Errorf("message should indicate the failure: got %q", m.message)
	}
}

func TestHandleEditorResult_NotSelected(t *testing.T) {
	m, h := newTestModel(t, nil)

	m, _ = send(t, m, editorResultMsg{email: mingEmail, editedYAML: "status: Hidden\n"})
	if m.message != "Record no longer selected" {
		t.Errorf("unexpected message %q", m.message)
	}
	if got, _ := h.store.Find(mingEmail); got.Status != roster.StatusActive {
		t.Error("record should be untouched without a selection")
	}
}

func TestEditKeyRequiresSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = loginToDashboard(t, m)

	m, cmd := press(t, m, "e")
	if cmd != nil {
		t.Error("expected no editor without a selection")
	}
	if m.message != "Select a record first" {
		t.Errorf("unexpected message %q", m.message)
	}
}
