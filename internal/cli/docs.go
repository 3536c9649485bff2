package cli

import (
	"fmt"

	"datescore-cli/internal/docs"
	"datescore-cli/internal/format"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in guides",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				return writeOut(cmd, app, format.Wrap(map[string]any{"topics": topics}).Hint("datescore docs "+topics[0]))
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `datescore docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, format.Wrap(map[string]any{"topic": topic, "markdown": body}))
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")
	return cmd
}
