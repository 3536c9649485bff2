package cli

import (
	"datescore-cli/internal/format"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List locally recorded submissions and suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.store.OpenJournal(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer j.Close()

			entries, err := j.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			env := format.Wrap(entries).With("total", len(entries)).With("enabled", app.journalEnabled())
			if !app.journalEnabled() {
				env.Hint("datescore --journal submit ...", "set \"journal\": true in "+app.store.ConfigPath())
			}
			return writeOut(cmd, app, env)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max entries (0 = all)")
	return cmd
}
