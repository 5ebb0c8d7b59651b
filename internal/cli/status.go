package cli

import (
	"fmt"

	"github.com/ohare93/onboard/internal/roster"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <email> <Active|Resigned|Hidden>",
	Short: "Set the lifecycle status of a record",
	Long: `Set the lifecycle status of every record with the given email.

Examples:
  onboard status ming@company.com Resigned
  onboard status ming@company.com hidden`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: CompleteStatusArgs,
	RunE:              runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, err := roster.ParseStatus(args[1])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	n := env.store().SetStatus(args[0], status)
	if n == 0 {
		return fmt.Errorf("no record with email %s", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", args[0], GetStatusStyle(status).Render(string(status)))
	return env.persistErr()
}
