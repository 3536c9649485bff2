package submit

import (
	"context"
	"strings"

	"datescore-cli/internal/model"
)

const MsgCommentRequired = "ユーザー名とコメントを入力してください"

type CommentService interface {
	Comments(ctx context.Context, postID int64) ([]model.Comment, error)
	CreateComment(ctx context.Context, postID int64, username, body string) (*model.Comment, error)
}

// CommentForm posts a comment on one plan.
type CommentForm struct {
	PostID   int64
	Username string
	Body     string
}

func (f CommentForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" || strings.TrimSpace(f.Body) == "" {
		return &ValidationError{Message: MsgCommentRequired}
	}
	return nil
}

// Submit posts the trimmed comment and returns the refreshed comment list. When only the
// refresh fails the error is a *FlowError with Posted set.
func (f CommentForm) Submit(ctx context.Context, svc CommentService) ([]model.Comment, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if _, err := svc.CreateComment(ctx, f.PostID, strings.TrimSpace(f.Username), strings.TrimSpace(f.Body)); err != nil {
		return nil, wrap(err)
	}
	list, err := svc.Comments(ctx, f.PostID)
	if err != nil {
		return nil, &FlowError{Message: Message(wrap(err)), Err: err, Posted: true}
	}
	return list, nil
}
