package api

import (
	"context"
	"net/http"

	"datescore-cli/internal/model"
)

func commentsPath(postID int64) string {
	return "/api/dates/" + idString(postID) + "/comments"
}

// Comments lists the comments of a post in server order.
func (c *Client) Comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	var out struct {
		resultBody
		Comments []model.Comment `json:"comments"`
	}
	path := commentsPath(postID)
	if err := c.send(c.r(ctx), http.MethodGet, path, &out); err != nil {
		return nil, err
	}
	if err := c.checkResult(out.resultBody, http.MethodGet, path); err != nil {
		return nil, err
	}
	if out.Comments == nil {
		out.Comments = []model.Comment{}
	}
	for i := range out.Comments {
		out.Comments[i].PostID = postID
	}
	return out.Comments, nil
}

// CreateComment posts a comment. The backend only acknowledges the write, so the returned
// comment carries the submitted fields without a server id; refetch Comments to see it
// in context.
func (c *Client) CreateComment(ctx context.Context, postID int64, username, body string) (*model.Comment, error) {
	in := map[string]any{
		"date_plan_id": postID,
		"username":     username,
		"comment":      body,
	}
	var out struct {
		resultBody
		Message string `json:"message"`
	}
	path := commentsPath(postID)
	if err := c.send(c.r(ctx).SetBody(in), http.MethodPost, path, &out); err != nil {
		return nil, err
	}
	if err := c.checkResult(out.resultBody, http.MethodPost, path); err != nil {
		return nil, err
	}
	return &model.Comment{PostID: postID, Username: username, Body: body}, nil
}
