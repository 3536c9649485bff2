package cli

import (
	"datescore-cli/internal/format"

	"github.com/spf13/cobra"
)

func newDeviceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Show the device identifier likes are scoped to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := app.deviceID()
			id := d.ID()
			return writeOut(cmd, app, format.Wrap(map[string]any{
				"deviceId": id,
				"volatile": d.Volatile(),
			}).With("config", app.store.ConfigPath()))
		},
	}
}
