package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var notesClear bool

var notesCmd = &cobra.Command{
	Use:   "notes <email> [text...]",
	Short: "Show or replace the reviewer notes of a record",
	Long: `Show the reviewer notes of a record, or replace them with the given text.

Examples:
  onboard notes ming@company.com
  onboard notes ming@company.com "Strong architecture instincts"
  onboard notes ming@company.com --clear`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: CompleteEmails,
	RunE:              runNotes,
}

func init() {
	notesCmd.Flags().BoolVar(&notesClear, "clear", false, "Remove the notes")
}

func runNotes(cmd *cobra.Command, args []string) error {
	email := args[0]
	text := strings.Join(args[1:], " ")
	if notesClear && text != "" {
		return fmt.Errorf("--clear cannot be combined with text")
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	if text == "" && !notesClear {
		e, err := findEmployee(env.store(), email)
		if err != nil {
			return err
		}
		if e.Notes == "" {
			fmt.Fprintln(out, StyleDim.Render("No notes"))
			return nil
		}
		fmt.Fprintln(out, e.Notes)
		return nil
	}

	if n := env.store().SetNotes(email, text); n == 0 {
		return fmt.Errorf("no record with email %s", email)
	}
	fmt.Fprintf(out, "✓ Notes saved for %s\n", email)
	return env.persistErr()
}
