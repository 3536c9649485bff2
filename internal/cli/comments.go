package cli

import (
	"datescore-cli/internal/format"
	"datescore-cli/internal/submit"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Comment commands",
	}
	cmd.AddCommand(newCommentsAddCmd(app))
	cmd.AddCommand(newCommentsListCmd(app))
	return cmd
}

func newCommentsAddCmd(app *App) *cobra.Command {
	var username string
	var body string

	cmd := &cobra.Command{
		Use:   "add <plan-id>",
		Short: "Comment on a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("plan", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			form := submit.CommentForm{PostID: id, Username: username, Body: body}
			list, err := form.Submit(cmd.Context(), app.api())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Wrap(list).
				With("total", len(list)).
				With("planId", id))
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Display name")
	cmd.Flags().StringVar(&body, "body", "", "Comment body")
	return cmd
}

func newCommentsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <plan-id>",
		Short: "List comments on a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("plan", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			list, err := app.api().Comments(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			env := format.Wrap(list).With("total", len(list)).With("planId", id)
			if len(list) > 0 {
				env.Hint("datescore like comment " + idString(list[0].ID))
			}
			return writeOut(cmd, app, env)
		},
	}
}
