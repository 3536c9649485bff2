package api

import (
	"context"
	"net/http"
	"strconv"

	"datescore-cli/internal/model"
)

const (
	rankingPath = "/api/dates/ranking"
	searchPath  = "/api/dates/search"
	datesPath   = "/api/dates"
)

// Ranking returns the posts in server ranking order.
func (c *Client) Ranking(ctx context.Context) ([]model.DatePlanPost, error) {
	var posts []model.DatePlanPost
	if err := c.send(c.r(ctx), http.MethodGet, rankingPath, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.DatePlanPost{}
	}
	return posts, nil
}

// Search returns posts matching keyword. An empty keyword returns all posts.
func (c *Client) Search(ctx context.Context, keyword string) ([]model.DatePlanPost, error) {
	var posts []model.DatePlanPost
	req := c.r(ctx).SetQueryParam("keyword", keyword)
	if err := c.send(req, http.MethodGet, searchPath, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.DatePlanPost{}
	}
	return posts, nil
}

// CreatePlan submits a plan for scoring and storage.
func (c *Client) CreatePlan(ctx context.Context, sub model.Submission) (*model.ScoreResult, error) {
	var out model.ScoreResult
	if err := c.send(c.r(ctx).SetBody(sub), http.MethodPost, datesPath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func idString(id int64) string { return strconv.FormatInt(id, 10) }
