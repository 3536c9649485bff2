package cli

import (
	"io"
	"os"
	"path/filepath"

	"datescore-cli/internal/store"
	"datescore-cli/internal/tui"

	"github.com/spf13/cobra"
)

const tuiLogFileName = "datescore.log"

// runTUIProgram is swapped in tests so the launch path runs without a terminal.
var runTUIProgram = tui.Run

// runTUI starts the interactive UI. The TUI owns the terminal, so logs go to a file in the
// config dir instead of stderr. An unusable config dir only costs the log file.
func runTUI(cmd *cobra.Command, app *App) error {
	var logOut io.Writer = io.Discard
	if f, err := openTUILog(app.store); err != nil {
		app.logger.Warn("tui log unavailable, logging disabled", "dir", app.store.Dir, "error", err)
	} else {
		defer f.Close()
		logOut = f
	}

	logger, err := newLogger(logOut, app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logger = logger
	// Rebuild the client (if any) with the file logger.
	app.client = nil

	opts := tui.Options{
		Backend:  app.api(),
		DeviceID: app.deviceID().ID,
		Store:    app.store,
		Logger:   logger,
	}
	if cfg := app.cfg; cfg != nil && cfg.TUI != nil {
		opts.Glyphs = cfg.TUI.Glyphs
		opts.StartPage = cfg.TUI.StartPage
	}

	if app.journalEnabled() {
		j, err := app.store.OpenJournal(cmd.Context())
		if err != nil {
			logger.Warn("journal unavailable", "error", err)
		} else {
			defer j.Close()
			opts.Journal = j
		}
	}

	if err := runTUIProgram(cmd.Context(), opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func openTUILog(s store.Store) (*os.File, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(s.Dir, tuiLogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

var _ tui.Journal = (*store.Journal)(nil)
