package api

import (
	"context"
	"fmt"
	"net/http"

	"datescore-cli/internal/model"
)

type likeResponse struct {
	resultBody
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func likeBase(kind model.LikeKind, id int64) (string, error) {
	switch kind {
	case model.LikePlan:
		return "/api/plans/" + idString(id), nil
	case model.LikeComment:
		return "/api/comments/" + idString(id), nil
	default:
		return "", fmt.Errorf("unknown like kind %q", kind)
	}
}

// LikeStatus returns whether deviceID has liked the entity, and its like count.
func (c *Client) LikeStatus(ctx context.Context, kind model.LikeKind, id int64, deviceID string) (model.LikeState, error) {
	base, err := likeBase(kind, id)
	if err != nil {
		return model.LikeState{}, err
	}
	path := base + "/like-status"

	var out likeResponse
	req := c.r(ctx).SetQueryParam("device_id", deviceID)
	if err := c.send(req, http.MethodGet, path, &out); err != nil {
		return model.LikeState{}, err
	}
	if err := c.checkResult(out.resultBody, http.MethodGet, path); err != nil {
		return model.LikeState{}, err
	}
	return model.LikeState{Liked: out.Liked, LikeCount: out.LikeCount}, nil
}

// ToggleLike flips the like of deviceID on the entity. The server is authoritative for
// the resulting state.
func (c *Client) ToggleLike(ctx context.Context, kind model.LikeKind, id int64, deviceID string) (model.LikeState, error) {
	base, err := likeBase(kind, id)
	if err != nil {
		return model.LikeState{}, err
	}
	path := base + "/like"

	body := map[string]any{"device_id": deviceID}
	if kind == model.LikePlan {
		body["date_plan_id"] = id
	} else {
		body["comment_id"] = id
	}

	var out likeResponse
	if err := c.send(c.r(ctx).SetBody(body), http.MethodPost, path, &out); err != nil {
		return model.LikeState{}, err
	}
	if err := c.checkResult(out.resultBody, http.MethodPost, path); err != nil {
		return model.LikeState{}, err
	}
	return model.LikeState{Liked: out.Liked, LikeCount: out.LikeCount}, nil
}
