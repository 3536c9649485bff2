package cli

import (
	"fmt"

	"datescore-cli/internal/format"
	"datescore-cli/internal/like"
	"datescore-cli/internal/model"

	"github.com/spf13/cobra"
)

func newLikeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "like",
		Short: "Like commands (scoped to this device)",
	}
	cmd.AddCommand(newLikeToggleCmd(app, model.LikePlan))
	cmd.AddCommand(newLikeToggleCmd(app, model.LikeComment))
	cmd.AddCommand(newLikeStatusCmd(app))
	return cmd
}

type likeOut struct {
	Kind      model.LikeKind `json:"kind"`
	ID        int64          `json:"id"`
	Liked     bool           `json:"liked"`
	LikeCount int            `json:"like_count"`
}

func newLikeToggleCmd(app *App, kind model.LikeKind) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " <id>",
		Short: fmt.Sprintf("Toggle the like on a %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(string(kind), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			t := like.New(kind, id, 0).WithLogger(app.logger)
			ch, _, err := t.Toggle(cmd.Context(), app.api(), app.deviceID().ID())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Wrap(likeOut{Kind: ch.Kind, ID: ch.ID, Liked: ch.Liked, LikeCount: ch.Count}))
		},
	}
}

func newLikeStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "status <plan|comment> <id>",
		Short:     "Show whether this device likes a plan or comment",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(model.LikePlan), string(model.LikeComment)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.LikeKind(args[0])
			if !kind.Valid() {
				return writeErr(cmd, fmt.Errorf("unknown like kind %q (want plan|comment)", args[0]))
			}
			id, err := parseID(string(kind), args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			t := like.New(kind, id, 0).WithLogger(app.logger)
			if err := t.Reconcile(cmd.Context(), app.api(), app.deviceID().ID()); err != nil {
				return writeErr(cmd, err)
			}
			liked, count, _ := t.View()
			return writeOut(cmd, app, format.Wrap(likeOut{Kind: kind, ID: id, Liked: liked, LikeCount: count}))
		},
	}
}
