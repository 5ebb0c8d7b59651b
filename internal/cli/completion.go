package cli

import (
	"strings"

	"github.com/ohare93/onboard/internal/roster"
	"github.com/spf13/cobra"
)

// CompleteEmails provides completion suggestions for record emails
func CompleteEmails(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	env, err := openEnv()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer env.Close()

	return emailCompletions(env.store().Employees(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func emailCompletions(employees []roster.Employee, toComplete string) []string {
	var completions []string
	seen := make(map[string]bool)
	for _, e := range employees {
		if seen[e.Email] || !strings.HasPrefix(e.Email, toComplete) {
			continue
		}
		seen[e.Email] = true
		// Show the name as description
		completions = append(completions, e.Email+"\t"+e.FullName)
	}
	return completions
}

// CompleteStatusArgs completes an email, then a status
func CompleteStatusArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return CompleteEmails(cmd, args, toComplete)
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, st := range roster.Statuses {
		if strings.HasPrefix(strings.ToLower(string(st)), strings.ToLower(toComplete)) {
			completions = append(completions, string(st))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
