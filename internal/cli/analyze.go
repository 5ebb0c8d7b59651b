package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ohare93/onboard/internal/review"
	"github.com/spf13/cobra"
)

var (
	analyzeJSON  bool
	strategyJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <email>",
	Short: "Generate the talent insight for a record",
	Long: `Ask the configured narrative provider for a record's talent insight.

When the provider fails, times out or has no credential the fixed fallback
insight is printed instead and a warning goes to stderr.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: CompleteEmails,
	RunE:              runAnalyze,
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Generate the roster-wide talent strategy",
	Args:  cobra.NoArgs,
	RunE:  runStrategy,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the insight as JSON")
	strategyCmd.Flags().BoolVar(&strategyJSON, "json", false, "Print the strategy as JSON")
}

// commandContext returns the command's context, which is unset when a run
// function is called directly
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	e, err := findEmployee(env.store(), args[0])
	if err != nil {
		return err
	}
	narrator, _, err := env.narrator()
	if err != nil {
		return err
	}

	res := review.AnalysisRequest{Employee: e}.Run(commandContext(cmd), narrator)
	if res.Degraded {
		fmt.Fprintln(cmd.ErrOrStderr(), StyleWarning.Render("⚠ narrative provider unavailable, showing fallback text"))
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		data, err := json.MarshalIndent(res.Insight, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprint(out, review.FormatInsight(e.FullName, res.Insight))
	return nil
}

func runStrategy(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	employees := env.store().Employees()
	if len(employees) == 0 {
		return fmt.Errorf("roster is empty; nothing to summarise")
	}
	narrator, _, err := env.narrator()
	if err != nil {
		return err
	}

	res := review.StrategyRequest{Employees: employees}.Run(commandContext(cmd), narrator)
	if res.Degraded {
		fmt.Fprintln(cmd.ErrOrStderr(), StyleWarning.Render("⚠ narrative provider unavailable, showing fallback text"))
	}

	out := cmd.OutOrStdout()
	if strategyJSON {
		data, err := json.MarshalIndent(struct {
			Records  int    `json:"records"`
			Strategy string `json:"strategy"`
			Fallback bool   `json:"fallback"`
		}{len(employees), res.Text, res.Degraded}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintln(out, res.Text)
	return nil
}
