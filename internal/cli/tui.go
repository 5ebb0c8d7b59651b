package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ohare93/onboard/internal/tui"
	"github.com/ohare93/onboard/internal/watcher"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive portal (default)",
	Long: `Launch the full-screen portal with the intake form and the HR dashboard.

Portal:
  1/f        New hire intake form
  2/a        HR admin sign-in (shared access code)
  q          Quit

Intake form:
  tab/↑↓     Move between fields
  ←/→        Choose an option
  space      Toggle a chip
  ctrl+n     Next step
  ctrl+b     Previous step
  ctrl+s     Submit (last step)
  esc        Discard and return to the portal

Dashboard:
  ↑/k ↓/j    Move
  enter      Select a record and run its insight
  r          Re-run the insight
  d/D s/S    Cycle department / status filters
  1/2/3      Set status Active / Resigned / Hidden
  n          Edit notes (ctrl+s saves)
  e          Edit status and notes in $EDITOR
  c/C        Copy strategy / insight
  x          Delete record (with confirmation)
  R          Restore the sample dataset (with confirmation)
  esc        Sign out

With "watch": true in the config the roster reloads when another process
rewrites the storage slot.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	narrator, gate, err := env.narrator()
	if err != nil {
		return err
	}

	var fileWatcher *watcher.Watcher
	if env.cfg.Watch {
		fileWatcher, err = watcher.New()
		if err != nil {
			return err
		}
		if err := fileWatcher.WatchSlot(env.handle.SlotPath); err != nil {
			fileWatcher.Close()
			return err
		}
		fileWatcher.Start()
		defer fileWatcher.Stop()
		env.log.Debug("watching roster slot", "path", env.handle.SlotPath)
	}

	model := tui.New(tui.Options{
		Store:     env.store(),
		Narrator:  narrator,
		Gate:      gate,
		AdminCode: env.cfg.AdminCode,
		Watcher:   fileWatcher,
		Logger:    env.log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return env.persistErr()
}
