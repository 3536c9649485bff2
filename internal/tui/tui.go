package tui

import (
	"context"
	"io"
	"log/slog"

	"datescore-cli/internal/like"
	"datescore-cli/internal/model"
	"datescore-cli/internal/store"
	"datescore-cli/internal/submit"

	tea "github.com/charmbracelet/bubbletea"
)

// Backend is everything the TUI asks of the remote API.
type Backend interface {
	like.Service
	submit.PlanCreator
	submit.CommentService
	submit.Suggester

	Ranking(ctx context.Context) ([]model.DatePlanPost, error)
	Search(ctx context.Context, keyword string) ([]model.DatePlanPost, error)
}

// Journal records successful results locally. Nil disables it.
type Journal interface {
	RecordSubmission(ctx context.Context, sub model.Submission, res model.ScoreResult) error
	RecordSuggestion(ctx context.Context, input string, sg model.Suggestion) error
}

type Options struct {
	Backend  Backend
	DeviceID func() string
	Store    store.Store
	Journal  Journal
	Logger   *slog.Logger

	// Glyphs and StartPage come from config.json's "tui" section.
	Glyphs    string
	StartPage string
}

func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(appModel); ok {
		fm.close()
		fm.saveState()
	}
	return err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
