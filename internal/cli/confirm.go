package cli

import (
	"fmt"
	"os"

	"github.com/ohare93/onboard/internal/roster"
	"golang.org/x/term"
)

// confirmPrompt is the interactive yes/no prompt (replaced in tests)
var confirmPrompt = ConfirmSingleKey

// ConfirmSingleKey displays a yes/no prompt and waits for a single keypress.
// Returns true for 'y'/'Y', false for 'n'/'N', or error on Ctrl+C.
// No Enter key is required - responds immediately to keypress.
func ConfirmSingleKey(prompt string) (bool, error) {
	fmt.Printf("%s (y/n): ", prompt)

	// Get terminal file descriptor
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Println()
		return false, fmt.Errorf("confirmation needs a terminal; use --force")
	}

	// Save original terminal state and ensure it's restored
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	b := make([]byte, 1)
	if _, err := os.Stdin.Read(b); err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch key := b[0]; key {
	case 3: // Ctrl+C
		fmt.Print("^C\r\n")
		return false, fmt.Errorf("interrupted")
	case 'y', 'Y':
		fmt.Print("y\r\n")
		return true, nil
	case 'n', 'N':
		fmt.Print("n\r\n")
		return false, nil
	}

	// Invalid key - restore terminal and ask again
	term.Restore(fd, oldState)
	fmt.Println()
	fmt.Println("Invalid key. Please press 'y' or 'n'.")
	return ConfirmSingleKey(prompt)
}

// terminalGate is the store's confirmation gate for CLI commands. With force
// every prompt is answered yes; a failed prompt counts as a no.
func terminalGate(force bool) roster.Confirmer {
	if force {
		return roster.Answer(true)
	}
	return roster.ConfirmFunc(func(prompt string) bool {
		ok, err := confirmPrompt(prompt)
		if err != nil {
			fmt.Fprintln(os.Stderr, StyleWarning.Render(err.Error()))
			return false
		}
		return ok
	})
}
