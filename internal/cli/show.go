package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/roster"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <email>",
	Short:             "Show every field of a record",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: CompleteEmails,
	RunE:              runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	e, err := findEmployee(env.store(), args[0])
	if err != nil {
		return err
	}
	renderEmployeeDetails(cmd.OutOrStdout(), e)
	return nil
}

// findEmployee resolves an email with a friendlier error
func findEmployee(store *roster.Store, email string) (roster.Employee, error) {
	e, err := store.Find(email)
	if errors.Is(err, roster.ErrNotFound) {
		return roster.Employee{}, fmt.Errorf("no record with email %s", email)
	}
	return e, err
}

func renderEmployeeDetails(w io.Writer, e roster.Employee) {
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintln(w, labelStyle.Render(label+":"), value)
	}

	field("Name", e.FullName)
	field("Email", e.Email)
	field("Reference", e.ID)
	fmt.Fprintln(w, labelStyle.Render("Status:"), GetStatusStyle(e.Status).Render(string(e.Status)))
	field("Department", e.Department)
	field("Position", e.Position)
	field("Start date", e.StartDate)
	field("Experience", fmt.Sprintf("%g years", e.TotalExperienceYears))
	field("Education", strings.TrimSpace(e.Education+" "+e.Major))
	field("Languages", strings.Join(e.Languages, ", "))
	field("Top skills", strings.Join(e.TopSkills, ", "))
	field("MBTI", e.MBTI)
	field("Work style", string(e.WorkStyle))
	field("Interests", e.Interests)
	field("Expectations", e.Expectations)

	fmt.Fprintln(w)
	field("Phone", e.Phone)
	field("Birthday", e.Birthday)
	field("Gender", string(e.Gender))
	field("National ID", e.NationalID)
	field("Address", e.Address)
	field("Bank", strings.TrimSpace(e.BankCode+" "+e.BankAccount))
	if e.EmergencyContactName != "" {
		field("Emergency", fmt.Sprintf("%s (%s) %s", e.EmergencyContactName, e.EmergencyContactRelation, e.EmergencyContactPhone))
	}

	if e.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("Notes:"))
		fmt.Fprintln(w, e.Notes)
	}
}
