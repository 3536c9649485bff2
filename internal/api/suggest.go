package api

import (
	"context"
	"net/http"

	"datescore-cli/internal/model"
)

const suggestPath = "/api/ai-plan-suggestion"

// Suggest asks the backend to generate a date plan from free text.
func (c *Client) Suggest(ctx context.Context, userInput string) (*model.Suggestion, error) {
	var out struct {
		resultBody
		model.Suggestion
	}
	req := c.r(ctx).SetBody(map[string]string{"user_input": userInput})
	if err := c.send(req, http.MethodPost, suggestPath, &out); err != nil {
		return nil, err
	}
	if err := c.checkResult(out.resultBody, http.MethodPost, suggestPath); err != nil {
		return nil, err
	}
	sg := out.Suggestion
	return &sg, nil
}
