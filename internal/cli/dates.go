package cli

import (
	"context"

	"datescore-cli/internal/feed"
	"datescore-cli/internal/format"
	"datescore-cli/internal/model"

	"github.com/spf13/cobra"
)

func newRankingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ranking",
		Short: "List plans in ranking order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := app.api().Ranking(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			env := format.Wrap(posts).With("total", len(posts))
			if len(posts) > 0 {
				env.Hint("datescore show " + posts[0].IDString())
			}
			return writeOut(cmd, app, env)
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	var sortKey string
	var gender string

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search plans (empty keyword lists all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}

			var key feed.SortKey
			if sortKey != "" {
				k, err := feed.ParseSortKey(sortKey)
				if err != nil {
					return writeErr(cmd, err)
				}
				key = k
			}

			posts, err := app.api().Search(cmd.Context(), keyword)
			if err != nil {
				return writeErr(cmd, err)
			}

			c := feed.NewCollection(nil, nil)
			c.Load(posts)
			switch {
			case key != "":
				c.SortBy(key)
			case cmd.Flags().Changed("gender"):
				c.FilterGender(gender)
			}
			items := c.Items()

			env := format.Wrap(items).
				With("total", len(items)).
				With("fetched", len(posts)).
				With("keyword", keyword)
			if key != "" {
				env.With("sort", string(key))
			}
			if cmd.Flags().Changed("gender") {
				env.With("gender", gender)
			}
			return writeOut(cmd, app, env)
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort the results (age|date-number|cost)")
	cmd.Flags().StringVar(&gender, "gender", "", "Only show plans by gender (男性|女性|その他)")
	cmd.MarkFlagsMutuallyExclusive("sort", "gender")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <plan-id>",
		Short: "Show one plan with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("plan", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			post, err := findPost(cmd.Context(), app, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			comments, err := app.api().Comments(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Wrap(map[string]any{
				"plan":     post,
				"comments": comments,
			}).With("comments", len(comments)).Hint(
				"datescore like plan "+post.IDString(),
				"datescore comments add "+post.IDString()+" --username NAME --body TEXT",
			))
		},
	}
}

// findPost looks id up in the ranking, then in the unfiltered search.
func findPost(ctx context.Context, app *App, id int64) (model.DatePlanPost, error) {
	for _, fetch := range []func() ([]model.DatePlanPost, error){
		func() ([]model.DatePlanPost, error) { return app.api().Ranking(ctx) },
		func() ([]model.DatePlanPost, error) { return app.api().Search(ctx, "") },
	} {
		posts, err := fetch()
		if err != nil {
			return model.DatePlanPost{}, err
		}
		c := feed.NewCollection(nil, nil)
		c.Load(posts)
		if p, ok := c.Find(id); ok {
			return p, nil
		}
	}
	return model.DatePlanPost{}, errNotFound("plan", idString(id))
}
