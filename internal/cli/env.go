package cli

import (
	"fmt"
	"log/slog"

	"github.com/ohare93/onboard/internal/config"
	"github.com/ohare93/onboard/internal/narrative"
	"github.com/ohare93/onboard/internal/roster"
)

// commandEnv bundles what most commands need: config, logger and roster
type commandEnv struct {
	cfg    *config.Config
	log    *slog.Logger
	handle *StoreHandle

	closeLog func() error
}

func openEnv() (*commandEnv, error) {
	cfg, err := LoadConfigForCommand()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, closeLog, err := NewLoggerForCommand(cfg)
	if err != nil {
		return nil, err
	}
	handle, err := OpenStoreForCommand(cfg, log)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	return &commandEnv{cfg: cfg, log: log, handle: handle, closeLog: closeLog}, nil
}

func (e *commandEnv) store() *roster.Store {
	return e.handle.Store
}

func (e *commandEnv) Close() {
	if err := e.handle.Close(); err != nil {
		e.log.Warn("failed to close roster backend", "err", err)
	}
	e.closeLog()
}

// persistErr reports a failed write after a mutation. The in-memory change
// stands either way.
func (e *commandEnv) persistErr() error {
	if err := e.store().LastPersistError(); err != nil {
		return fmt.Errorf("change applied but not saved: %w", err)
	}
	return nil
}

// saveAPIKey stores a key entered at the credential gate in the config file.
// The file is re-read so flag overrides of this run are not written back.
func (e *commandEnv) saveAPIKey(key string) error {
	e.cfg.Narrative.APIKey = key
	return saveAPIKey(e.cfg.Options(), key)
}

func saveAPIKey(opts config.Options, key string) error {
	fresh, err := config.LoadWithOptions(opts)
	if err != nil {
		return err
	}
	fresh.Narrative.APIKey = key
	return fresh.SaveWithOptions(opts)
}

// narrator builds the configured collaborator wrapped with fallback and
// timeout, plus its capability gate
func (e *commandEnv) narrator() (*narrative.Resilient, narrative.Gate, error) {
	collab, gate, err := narrative.New(e.cfg.Narrative, e.saveAPIKey)
	if err != nil {
		return nil, nil, err
	}
	e.log.Debug("narrative provider", "provider", e.cfg.Narrative.Provider, "ready", gate.Ready())
	return narrative.WithFallback(collab, narrative.Timeout(e.cfg.Narrative), e.log), gate, nil
}
