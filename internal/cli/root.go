package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ohare93/onboard/internal/config"
	"github.com/ohare93/onboard/internal/roster"
	"github.com/spf13/cobra"
)

// sqliteFileName is the database created under the store directory for the
// sqlite backend
const sqliteFileName = "onboard.db"

var rootCmd = &cobra.Command{
	Use:           "onboard",
	Short:         "Collect new-hire onboarding details and review the roster",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Onboard runs a new-hire intake form and an HR review dashboard over a
locally persisted roster.

Getting started:
- Launch the interactive portal: onboard (no args) or onboard tui
- List records from a script: onboard list --status All
- Change a record: onboard status <email> Resigned

The roster is kept in a single named storage slot. The first run seeds a
two-record sample dataset; onboard reset restores it.`,
	RunE: runTUI,
	Args: cobra.NoArgs,
}

// GlobalOptions holds global configuration flags for testing and path overrides
type GlobalOptions struct {
	ConfigHome string // Override for the directory holding .onboard
	StoreDir   string // Override for the storage directory
	Backend    string // Override for the storage backend
	Verbose    bool   // Log at debug level
}

// GlobalOpts holds the parsed global flags (exported for testing)
var GlobalOpts GlobalOptions

// GetConfigOptions returns config.Options based on global flags
func GetConfigOptions() config.Options {
	opts := config.DefaultOptions()
	if GlobalOpts.ConfigHome != "" {
		opts.ConfigHome = GlobalOpts.ConfigHome
	}
	return opts
}

// LoadConfigForCommand loads Config with options from global flags. Flag
// overrides apply to this run only and are never saved.
func LoadConfigForCommand() (*config.Config, error) {
	cfg, err := config.LoadWithOptions(GetConfigOptions())
	if err != nil {
		return nil, err
	}
	if GlobalOpts.StoreDir != "" {
		cfg.StoreDir = GlobalOpts.StoreDir
	}
	if GlobalOpts.Backend != "" {
		cfg.StoreBackend = GlobalOpts.Backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLoggerForCommand opens the configured log file. The returned close
// function is never nil.
func NewLoggerForCommand(cfg *config.Config) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if GlobalOpts.Verbose {
		level = slog.LevelDebug
	}

	path := cfg.ResolvedLogFile()
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f.Close, nil
}

// StoreHandle is an initialized roster plus the resources behind it
type StoreHandle struct {
	Store    *roster.Store
	SlotPath string // file rewritten on every mutation, for watching

	closeFn func() error
	unsub   func()
}

// Close releases the backend
func (h *StoreHandle) Close() error {
	if h.unsub != nil {
		h.unsub()
	}
	if h.closeFn != nil {
		return h.closeFn()
	}
	return nil
}

// OpenStoreForCommand opens the configured backend and initializes the
// roster, seeding the sample dataset on first use
func OpenStoreForCommand(cfg *config.Config, log *slog.Logger) (*StoreHandle, error) {
	dir := cfg.ResolvedStoreDir()
	h := &StoreHandle{}

	var blob roster.BlobStore
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := roster.OpenSQLiteBlobStore(filepath.Join(dir, sqliteFileName))
		if err != nil {
			return nil, err
		}
		blob = db
		h.SlotPath = db.Path()
		h.closeFn = db.Close
	default:
		fs, err := roster.NewFileBlobStore(dir)
		if err != nil {
			return nil, err
		}
		blob = fs
		h.SlotPath = fs.SlotPath(cfg.StorageKey)
	}

	store := roster.NewStore(blob, cfg.StorageKey)
	store.SetLogger(log)
	h.unsub = store.Subscribe(func(c roster.Change) {
		log.Debug("roster changed", "kind", c.Kind, "email", c.Email, "affected", c.Affected, "count", c.Count)
	})
	store.Initialize()
	if store.SeededDefaults() {
		log.Info("seeded sample dataset", "key", store.Key(), "backend", cfg.StoreBackend)
	}
	h.Store = store
	return h, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&GlobalOpts.ConfigHome, "config-home", "", "Override the directory holding .onboard (for testing)")
	rootCmd.PersistentFlags().StringVar(&GlobalOpts.StoreDir, "store-dir", "", "Override the storage directory")
	rootCmd.PersistentFlags().StringVar(&GlobalOpts.Backend, "backend", "", "Override the storage backend: file or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&GlobalOpts.Verbose, "verbose", "v", false, "Write debug logs")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(strategyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}
