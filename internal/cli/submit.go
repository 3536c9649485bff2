package cli

import (
	"context"
	"strings"

	"datescore-cli/internal/format"
	"datescore-cli/internal/model"
	"datescore-cli/internal/submit"

	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App) *cobra.Command {
	var p submit.Plan

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a date plan for scoring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := p.Submit(cmd.Context(), app.api())
			if err != nil {
				return writeErr(cmd, err)
			}
			sub := p.Submission()
			app.recordSubmission(cmd.Context(), sub, *res)

			return writeOut(cmd, app, format.Wrap(res).
				With("submission", sub).
				With("details", submit.Details(*res)).
				Hint("datescore ranking"))
		},
	}

	// Required-ness is checked by submit.Plan so the message matches the TUI form.
	cmd.Flags().StringVar(&p.Age, "age", "", "Age (number)")
	cmd.Flags().StringVar(&p.Occupation, "occupation", "", "Occupation ("+strings.Join(submit.Occupations, "|")+")")
	cmd.Flags().StringVar(&p.Gender, "gender", "", "Gender ("+strings.Join(submit.Genders, "|")+")")
	cmd.Flags().StringVar(&p.Date, "date", "", "Date (YYYY-MM-DD); the weekday is derived")
	cmd.Flags().StringVar(&p.TimeOfDay, "time-of-day", "", "Time of day ("+strings.Join(submit.TimesOfDay, "|")+")")
	cmd.Flags().StringVar(&p.DateNumber, "date-number", "", "Which date this is (number)")
	cmd.Flags().StringVar(&p.Location, "location", "", "Location")
	cmd.Flags().StringVar(&p.Cost, "cost", "", "Cost in yen (number)")
	cmd.Flags().StringVar(&p.AdditionalNotes, "notes", "", "Additional notes")
	return cmd
}

func (app *App) recordSubmission(ctx context.Context, sub model.Submission, res model.ScoreResult) {
	if !app.journalEnabled() {
		return
	}
	j, err := app.store.OpenJournal(ctx)
	if err != nil {
		app.logger.Warn("journal unavailable", "error", err)
		return
	}
	defer j.Close()
	if err := j.RecordSubmission(ctx, sub, res); err != nil {
		app.logger.Warn("journal write failed", "error", err)
	}
}

func (app *App) recordSuggestion(ctx context.Context, input string, sg model.Suggestion) {
	if !app.journalEnabled() {
		return
	}
	j, err := app.store.OpenJournal(ctx)
	if err != nil {
		app.logger.Warn("journal unavailable", "error", err)
		return
	}
	defer j.Close()
	if err := j.RecordSuggestion(ctx, input, sg); err != nil {
		app.logger.Warn("journal write failed", "error", err)
	}
}
