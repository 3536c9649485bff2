package submit

import (
	"context"
	"strings"

	"datescore-cli/internal/model"
)

const MsgSuggestionRequired = "何かご要望を入力してください"

type Suggester interface {
	Suggest(ctx context.Context, userInput string) (*model.Suggestion, error)
}

// SuggestionForm asks the backend to generate a plan.
type SuggestionForm struct {
	Input string
}

func (f SuggestionForm) Submit(ctx context.Context, svc Suggester) (*model.Suggestion, error) {
	in := strings.TrimSpace(f.Input)
	if in == "" {
		return nil, &ValidationError{Message: MsgSuggestionRequired}
	}
	sg, err := svc.Suggest(ctx, in)
	if err != nil {
		return nil, wrap(err)
	}
	return sg, nil
}
