package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ohare93/onboard/internal/roster"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat     string
	exportOutput     string
	exportDepartment string
	exportStatus     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export roster records to JSON, YAML, or CSV",
	Long: `Export roster records for reporting or backup.

By default every record is exported. Use --department and --status to
apply the dashboard filters first.

Examples:
  # Full backup as JSON
  onboard export --format json --output roster.json

  # Active engineers as CSV
  onboard export --format csv --department Engineering --status Active`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json, yaml, or csv")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportDepartment, "department", roster.FilterAll, "Department to export, or All")
	exportCmd.Flags().StringVar(&exportStatus, "status", roster.FilterAll, "Status to export, or All")
}

func runExport(cmd *cobra.Command, args []string) error {
	var encode func([]roster.Employee) ([]byte, error)
	switch exportFormat {
	case "json":
		encode = exportJSON
	case "yaml", "yml":
		encode = exportYAML
	case "csv":
		encode = exportCSV
	default:
		return fmt.Errorf("invalid format: %s (must be json, yaml, or csv)", exportFormat)
	}

	filter, err := parseFilter(exportDepartment, exportStatus)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	employees := filter.Apply(env.store().Employees())
	data, err := encode(employees)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d record(s) to %s\n", len(employees), exportOutput)
	return nil
}

// exportDocument wraps records with export metadata for JSON and YAML
type exportDocument struct {
	ExportedAt   string            `json:"exported_at" yaml:"exported_at"`
	TotalRecords int               `json:"total_records" yaml:"total_records"`
	Records      []roster.Employee `json:"records" yaml:"records"`
}

func newExportDocument(employees []roster.Employee) exportDocument {
	if employees == nil {
		employees = []roster.Employee{}
	}
	return exportDocument{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		TotalRecords: len(employees),
		Records:      employees,
	}
}

func exportJSON(employees []roster.Employee) ([]byte, error) {
	data, err := json.MarshalIndent(newExportDocument(employees), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func exportYAML(employees []roster.Employee) ([]byte, error) {
	return yaml.Marshal(newExportDocument(employees))
}

func exportCSV(employees []roster.Employee) ([]byte, error) {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)

	header := []string{
		"ID",
		"FullName",
		"Email",
		"Phone",
		"Department",
		"Position",
		"StartDate",
		"ExperienceYears",
		"Education",
		"Major",
		"Languages",
		"TopSkills",
		"Status",
		"MBTI",
		"WorkStyle",
		"Notes",
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, e := range employees {
		row := []string{
			e.ID,
			e.FullName,
			e.Email,
			e.Phone,
			e.Department,
			e.Position,
			e.StartDate,
			strconv.FormatFloat(e.TotalExperienceYears, 'f', -1, 64),
			e.Education,
			e.Major,
			strings.Join(e.Languages, ";"),
			strings.Join(e.TopSkills, ";"),
			string(e.Status),
			e.MBTI,
			string(e.WorkStyle),
			e.Notes,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}
