package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"datescore-cli/internal/api"
	"datescore-cli/internal/format"
	"datescore-cli/internal/store"
	"datescore-cli/internal/submit"

	"github.com/spf13/cobra"
)

// Version is stamped at build time (-ldflags "-X datescore-cli/internal/cli.Version=...").
var Version = "dev"

type App struct {
	APIURL     string
	Timeout    time.Duration
	PrettyJSON bool
	Format     string
	LogLevel   string
	Journal    bool

	store  store.Store
	cfg    *store.GlobalConfig
	logger *slog.Logger
	client *api.Client
	device *store.Device
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "datescore",
		Short:        "Date plan scoring client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  datescore

  # Scriptable commands
  datescore ranking
  datescore search 水族館 --sort cost

  # Score a plan
  datescore submit --age 25 --occupation 会社員 --gender 男性 --date 2025-08-02 \
    --time-of-day 夜 --date-number 3 --location 水族館 --cost 3000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.client != nil {
			return app.client.Close()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Backend base URL (env DATESCORE_API_URL, config apiUrl; default "+store.DefaultAPIURL+")")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", envDuration("DATESCORE_TIMEOUT", 0), "Per-request timeout (0 = none)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DATESCORE_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("DATESCORE_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.Journal, "journal", false, "Record submissions and suggestions in the local history")

	cmd.AddCommand(newRankingCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newSubmitCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newLikeCmd(app))
	cmd.AddCommand(newSuggestCmd(app))
	cmd.AddCommand(newDeviceCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) init(cmd *cobra.Command) error {
	if _, err := format.Parse(app.Format); err != nil {
		return writeErr(cmd, err)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.logger = logger

	s, err := store.Default()
	if err != nil {
		return writeErr(cmd, err)
	}
	app.store = s

	// An unreadable config only costs the apiUrl/journal settings; Device falls back on its own.
	cfg, err := s.LoadConfig()
	if err != nil {
		app.logger.Warn("config unreadable, using defaults", "path", s.ConfigPath(), "error", err)
		cfg = &store.GlobalConfig{}
	}
	app.cfg = cfg
	return nil
}

func (app *App) api() *api.Client {
	if app.client == nil {
		app.client = api.New(api.Options{
			BaseURL:   store.ResolveAPIURL(app.APIURL, app.cfg),
			Timeout:   app.Timeout,
			UserAgent: "datescore/" + Version,
			Logger:    app.logger,
		})
	}
	return app.client
}

func (app *App) deviceID() *store.Device {
	if app.device == nil {
		app.device = store.NewDevice(app.store, app.logger)
	}
	return app.device
}

func (app *App) journalEnabled() bool {
	return app.Journal || (app.cfg != nil && app.cfg.Journal)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envDuration(k string, d time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return d
	}
	return parsed
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	f, err := format.Parse(app.Format)
	if err != nil {
		return err
	}
	return format.Write(cmd.OutOrStdout(), v, f, app.PrettyJSON)
}

// writeErr prints the user-facing message for err and returns it so cobra exits non-zero.
func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), submit.Message(err))
	return err
}
