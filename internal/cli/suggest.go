package cli

import (
	"strings"

	"datescore-cli/internal/format"
	"datescore-cli/internal/submit"

	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <request...>",
		Short: "Ask the AI for a date plan",
		Example: strings.TrimSpace(`
  datescore suggest 雨の日でも楽しめる 予算5000円
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			sg, err := submit.SuggestionForm{Input: input}.Submit(cmd.Context(), app.api())
			if err != nil {
				return writeErr(cmd, err)
			}
			app.recordSuggestion(cmd.Context(), strings.TrimSpace(input), *sg)
			return writeOut(cmd, app, format.Wrap(sg).With("input", strings.TrimSpace(input)))
		},
	}
}
