package tui

import (
	"datescore-cli/internal/feed"
	"datescore-cli/internal/like"
	"datescore-cli/internal/model"
)

type page int

const (
	pageSubmit page = iota
	pageAI
	pageRanking
	pageSearch
)

var pages = []page{pageSubmit, pageAI, pageRanking, pageSearch}

func (p page) String() string {
	switch p {
	case pageAI:
		return "ai"
	case pageRanking:
		return "ranking"
	case pageSearch:
		return "search"
	default:
		return "submit"
	}
}

func (p page) label() string {
	switch p {
	case pageAI:
		return "AI デートプラン考案"
	case pageRanking:
		return "偏差値ランキング"
	case pageSearch:
		return "検索"
	default:
		return "デート内容投稿"
	}
}

// selectionBearing reports whether the page publishes into the shared selection.
func (p page) selectionBearing() bool {
	return p == pageRanking || p == pageSearch
}

func parsePage(s string) (page, bool) {
	for _, p := range pages {
		if p.String() == s {
			return p, true
		}
	}
	return pageSubmit, false
}

type feedLoadedMsg struct {
	page   page
	ticket feed.Ticket
	posts  []model.DatePlanPost
	err    error
}

type likeStatusMsg struct {
	toggle *like.Toggle
	state  model.LikeState
	err    error
}

type likeToggledMsg struct {
	toggle *like.Toggle
	state  model.LikeState
	err    error
}

type commentsLoadedMsg struct {
	postID   int64
	gen      uint64
	comments []model.Comment
	err      error
}

type commentPostedMsg struct {
	postID   int64
	comments []model.Comment
	err      error
}

type planScoredMsg struct {
	gen int
	sub model.Submission
	res *model.ScoreResult
	err error
}

type suggestionMsg struct {
	gen   int
	input string
	sg    *model.Suggestion
	err   error
}
