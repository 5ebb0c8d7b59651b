package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteForce bool
	resetForce  bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a record permanently",
	Long: `Delete every record with the given email.

This action cannot be undone. By default, you will be prompted to confirm
the deletion. Use --force to skip the confirmation prompt.

Examples:
  onboard delete ming@company.com
  onboard delete ming@company.com --force`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: CompleteEmails,
	RunE:              runDelete,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the sample dataset",
	Long: `Replace the whole roster with the two-record sample dataset.

Every change is lost. By default, you will be prompted to confirm.
Use --force to skip the confirmation prompt.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	email := args[0]

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	e, err := findEmployee(env.store(), email)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Record to delete:\n")
	fmt.Fprintf(out, "  Name: %s\n", e.FullName)
	fmt.Fprintf(out, "  Email: %s\n", e.Email)
	fmt.Fprintf(out, "  Department: %s\n", e.Department)
	fmt.Fprintf(out, "  Status: %s\n\n", GetStatusStyle(e.Status).Render(string(e.Status)))

	removed, confirmed := env.store().Remove(email, terminalGate(deleteForce))
	if !confirmed {
		fmt.Fprintln(out, "Deletion cancelled.")
		return nil
	}

	fmt.Fprintf(out, "✓ Deleted %d record(s) for %s\n", removed, email)
	return env.persistErr()
}

func runReset(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	if !env.store().ResetToDefaults(terminalGate(resetForce)) {
		fmt.Fprintln(out, "Reset cancelled.")
		return nil
	}
	fmt.Fprintf(out, "✓ Sample dataset restored (%d records)\n", env.store().Len())
	return env.persistErr()
}
