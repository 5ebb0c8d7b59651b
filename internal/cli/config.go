package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ohare93/onboard/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage onboard configuration",
	Long: `Manage onboard configuration stored in ~/.onboard/config.json.

Without arguments, displays all current configuration entries.

Commands:
  config path                 Print the config file location
  config set <key> <value>    Change a setting
  config set-key [key]        Store the narrative API key (prompts when omitted)`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), GetConfigOptions().Path())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting in the config file.

Keys:
  store_backend     file or sqlite
  store_dir         directory holding the roster (empty for the config directory)
  storage_key       name of the storage slot
  admin_code        shared HR access code
  log_file          log file, relative to the config directory (empty disables)
  watch             true or false
  provider          openai, claude, or offline
  base_url          OpenAI-compatible endpoint
  model             model name
  timeout_seconds   narrative request timeout
  command           claude provider command line`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the narrative API key",
	Long: `Store the API key used by the openai narrative provider.

When the key is omitted it is read from the terminal without echo, or from
the first line of stdin when stdin is not a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetKey,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithOptions(GetConfigOptions())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	renderConfig(cmd.OutOrStdout(), cfg)
	return nil
}

func renderConfig(w io.Writer, cfg *config.Config) {
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	entry := func(key, value string) {
		if value == "" {
			value = StyleDim.Render("(unset)")
		}
		fmt.Fprintf(w, "  %s: %s\n", keyStyle.Render(key), value)
	}

	fmt.Fprintln(w, labelStyle.Render("Configuration:"), StyleDim.Render(cfg.Options().Path()))
	fmt.Fprintln(w)
	entry("store_backend", cfg.StoreBackend)
	entry("store_dir", cfg.ResolvedStoreDir())
	entry("storage_key", cfg.StorageKey)
	entry("admin_code", strings.Repeat("•", len(cfg.AdminCode)))
	entry("log_file", cfg.ResolvedLogFile())
	entry("watch", strconv.FormatBool(cfg.Watch))

	n := cfg.Narrative
	fmt.Fprintln(w)
	fmt.Fprintln(w, labelStyle.Render("Narrative:"))
	entry("provider", n.Provider)
	entry("base_url", n.BaseURL)
	entry("model", n.Model)
	entry("api_key", maskKey(n.ResolveAPIKey()))
	entry("api_key_env", n.APIKeyEnv)
	entry("timeout_seconds", strconv.Itoa(n.TimeoutSeconds))
	entry("command", strings.Join(n.Command, " "))

	if unknown := cfg.GetUnknownFields(); len(unknown) > 0 {
		sort.Strings(unknown)
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleWarning.Render("Unrecognized fields (preserved): "+strings.Join(unknown, ", ")))
	}
}

// maskKey keeps only the last four characters of a secret
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	opts := GetConfigOptions()
	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	key, value := args[0], args[1]
	if err := applyConfigSetting(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveWithOptions(opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s updated\n", key)
	return nil
}

func applyConfigSetting(cfg *config.Config, key, value string) error {
	switch key {
	case "store_backend":
		cfg.StoreBackend = value
	case "store_dir":
		cfg.StoreDir = value
	case "storage_key":
		if value == "" {
			return fmt.Errorf("storage_key cannot be empty")
		}
		cfg.StorageKey = value
	case "admin_code":
		if value == "" {
			return fmt.Errorf("admin_code cannot be empty")
		}
		cfg.AdminCode = value
	case "log_file":
		cfg.LogFile = value
	case "watch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid watch value %q: must be true or false", value)
		}
		cfg.Watch = b
	case "provider":
		cfg.Narrative.Provider = value
	case "base_url":
		cfg.Narrative.BaseURL = value
	case "model":
		cfg.Narrative.Model = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid timeout_seconds %q: must be a positive integer", value)
		}
		cfg.Narrative.TimeoutSeconds = n
	case "command":
		cfg.Narrative.Command = strings.Fields(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		var err error
		key, err = readSecret(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if err := saveAPIKey(GetConfigOptions(), key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ API key saved")
	return nil
}

// readSecret reads a line without echo from a terminal, or a plain line
// from any other reader
func readSecret(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "API key: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return line, nil
}
