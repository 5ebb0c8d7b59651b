package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/roster"
	"github.com/spf13/cobra"
)

var (
	listDepartment string
	listStatus     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roster records with the dashboard filters",
	Long: `List roster records, filtered the same way as the dashboard.

Status counts cover the whole roster; the average experience and the
language histogram cover the filtered records only.

Examples:
  onboard list
  onboard list --status All
  onboard list --department Engineering --status Resigned`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVar(&listDepartment, "department", roster.FilterAll, "Department to show, or All")
	listCmd.Flags().StringVar(&listStatus, "status", string(roster.StatusActive), "Status to show (Active, Resigned, Hidden), or All")
}

// parseFilter builds a roster filter from flag values
func parseFilter(department, status string) (roster.Filter, error) {
	f := roster.Filter{Department: department, Status: status}
	if f.Department == "" {
		f.Department = roster.FilterAll
	}
	if f.Status == "" || strings.EqualFold(f.Status, roster.FilterAll) {
		f.Status = roster.FilterAll
		return f, nil
	}
	st, err := roster.ParseStatus(f.Status)
	if err != nil {
		return roster.Filter{}, err
	}
	f.Status = string(st)
	return f, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := parseFilter(listDepartment, listStatus)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	all := env.store().Employees()
	filtered := filter.Apply(all)
	renderRoster(cmd.OutOrStdout(), filter, filtered, roster.Summarize(all, filtered))
	return nil
}

func renderRoster(w io.Writer, filter roster.Filter, employees []roster.Employee, sum roster.Summary) {
	fmt.Fprintf(w, "%s %d  %s %d  %s %d\n",
		StyleActive.Render("Active"), sum.Active,
		StyleResigned.Render("Resigned"), sum.Resigned,
		StyleHidden.Render("Hidden"), sum.Hidden,
	)
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("Filter: %s / %s", filter.Department, filter.Status)))
	fmt.Fprintln(w)

	if len(employees) == 0 {
		fmt.Fprintln(w, "No records match the filter.")
		return
	}

	fmt.Fprintln(w, StyleHeader.Render(fmt.Sprintf(" %-20s %-26s %-14s %-20s %-9s", "Name", "Email", "Department", "Position", "Status")))
	for _, e := range employees {
		fmt.Fprintf(w, " %s %s %s %s %s\n",
			padRight(truncate(e.FullName, 20), 20),
			padRight(truncate(e.Email, 26), 26),
			StyleDept.Render(padRight(truncate(e.Department, 14), 14)),
			padRight(truncate(e.Position, 20), 20),
			GetStatusStyle(e.Status).Render(string(e.Status)),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d shown · average experience %.1f years\n", sum.Visible, sum.AverageExperience)
	if len(sum.Languages) > 0 {
		parts := make([]string, len(sum.Languages))
		for i, lc := range sum.Languages {
			parts[i] = fmt.Sprintf("%s %d", lc.Language, lc.Count)
		}
		fmt.Fprintln(w, StyleDim.Render("Languages: "+strings.Join(parts, ", ")))
	}
}

// padRight pads by display width so CJK names stay aligned
func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
