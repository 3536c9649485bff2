package submit

import (
	"context"
	"errors"
	"testing"

	"datescore-cli/internal/api"
	"datescore-cli/internal/model"
)

type fakeBackend struct {
	createCalls  int
	commentCalls int
	listCalls    int
	suggestCalls int

	createErr  error
	commentErr error
	listErr    error
	suggestErr error

	lastSub     model.Submission
	lastUser    string
	lastBody    string
	lastSuggest string
}

func (f *fakeBackend) CreatePlan(ctx context.Context, sub model.Submission) (*model.ScoreResult, error) {
	f.createCalls++
	f.lastSub = sub
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.ScoreResult{Score: 62}, nil
}

func (f *fakeBackend) CreateComment(ctx context.Context, postID int64, username, body string) (*model.Comment, error) {
	f.commentCalls++
	f.lastUser, f.lastBody = username, body
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	return &model.Comment{PostID: postID, Username: username, Body: body}, nil
}

func (f *fakeBackend) Comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []model.Comment{{ID: 1, Username: f.lastUser, Body: f.lastBody}}, nil
}

func (f *fakeBackend) Suggest(ctx context.Context, in string) (*model.Suggestion, error) {
	f.suggestCalls++
	f.lastSuggest = in
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return &model.Suggestion{Title: "散歩"}, nil
}

func validPlan() Plan {
	return Plan{
		Age:        "25",
		Occupation: "会社員",
		Gender:     "男性",
		Date:       "2025-08-02",
		TimeOfDay:  "夜",
		DateNumber: "3",
		Location:   "水族館",
		Cost:       "3000",
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := map[string]string{
		"2025-08-02": "土",
		"2025-08-03": "日",
		"2024-02-29": "木",
	}
	for in, want := range cases {
		got, ok := DayOfWeek(in)
		if !ok || got != want {
			t.Errorf("DayOfWeek(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := DayOfWeek("2025-02-30"); ok {
		t.Errorf("expected invalid date")
	}
}

func TestPlanValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Plan)
		want   string
	}{
		{"ok", func(p *Plan) {}, ""},
		{"missing location", func(p *Plan) { p.Location = "  " }, MsgRequired},
		{"missing date", func(p *Plan) { p.Date = "" }, MsgRequired},
		{"bad date", func(p *Plan) { p.Date = "tomorrow" }, MsgRequired},
		{"zero cost allowed", func(p *Plan) { p.Cost = "0" }, ""},
		{"non-numeric age", func(p *Plan) { p.Age = "abc" }, MsgNumeric},
		{"non-numeric date number", func(p *Plan) { p.DateNumber = "3回目" }, MsgNumeric},
		{"non-numeric cost", func(p *Plan) { p.Cost = "free" }, MsgNumeric},
		{"NaN age", func(p *Plan) { p.Age = "NaN" }, MsgNumeric},
		{"Inf age", func(p *Plan) { p.Age = "Inf" }, MsgNumeric},
		{"infinity date number", func(p *Plan) { p.DateNumber = "infinity" }, MsgNumeric},
		{"negative inf cost", func(p *Plan) { p.Cost = "-inf" }, MsgNumeric},
		{"decimal cost allowed", func(p *Plan) { p.Cost = "2500.5" }, ""},
		{"notes optional", func(p *Plan) { p.AdditionalNotes = "" }, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPlan()
			tc.mutate(&p)
			err := p.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if Message(err) != tc.want {
				t.Fatalf("expected %q; got %v", tc.want, err)
			}
		})
	}
}

func TestPlanSubmit_NonNumericAgeMakesNoRequest(t *testing.T) {
	be := &fakeBackend{}
	p := validPlan()
	p.Age = "abc"

	_, err := p.Submit(context.Background(), be)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != MsgNumeric {
		t.Fatalf("expected numeric validation error; got %v", err)
	}
	if be.createCalls != 0 {
		t.Fatalf("expected no request; got %d", be.createCalls)
	}
}

func TestPlanSubmit_SendsDerivedWeekday(t *testing.T) {
	be := &fakeBackend{}
	res, err := validPlan().Submit(context.Background(), be)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 62 {
		t.Fatalf("unexpected result %#v", res)
	}
	if be.lastSub.DayOfWeek != "土" || be.lastSub.Date != "2025-08-02" {
		t.Fatalf("unexpected payload %#v", be.lastSub)
	}
}

func TestPlanSubmit_ErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&api.RejectedError{Status: 400, Detail: "不適切な内容です"}, "不適切な内容です"},
		{&api.ServerError{Status: 502}, "サーバーで問題が発生しました。"},
		{&api.TransportError{Method: "POST", Path: "/api/dates", Err: errors.New("refused")}, "サーバーとの通信でエラーが発生しました"},
	}
	for _, tc := range cases {
		be := &fakeBackend{createErr: tc.err}
		_, err := validPlan().Submit(context.Background(), be)
		if got := Message(err); got != tc.want {
			t.Errorf("Message(%T) = %q; want %q", tc.err, got, tc.want)
		}
		if !errors.Is(err, tc.err) {
			t.Errorf("expected cause %T kept", tc.err)
		}
	}
}

func TestCommentSubmit(t *testing.T) {
	be := &fakeBackend{}
	_, err := CommentForm{PostID: 1, Username: " ", Body: "hi"}.Submit(context.Background(), be)
	if Message(err) != MsgCommentRequired || be.commentCalls != 0 {
		t.Fatalf("expected blank username rejected locally; got %v calls=%d", err, be.commentCalls)
	}

	list, err := CommentForm{PostID: 1, Username: "  taro ", Body: " いいね "}.Submit(context.Background(), be)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if be.lastUser != "taro" || be.lastBody != "いいね" {
		t.Fatalf("expected trimmed values; got %q %q", be.lastUser, be.lastBody)
	}
	if be.listCalls != 1 || len(list) != 1 {
		t.Fatalf("expected comments refetched; calls=%d list=%v", be.listCalls, list)
	}
}

func TestCommentSubmit_RejectedDetailIsVerbatim(t *testing.T) {
	be := &fakeBackend{commentErr: &api.RejectedError{Status: 400, Detail: "NGワードを含みます"}}
	_, err := CommentForm{PostID: 1, Username: "taro", Body: "xxx"}.Submit(context.Background(), be)
	if got := Message(err); got != "NGワードを含みます" {
		t.Fatalf("expected verbatim detail; got %q", got)
	}
	if be.listCalls != 0 {
		t.Fatalf("expected no refetch after a rejected comment")
	}
}

func TestCommentSubmit_RefreshFailureIsMarkedPosted(t *testing.T) {
	be := &fakeBackend{listErr: &api.ServerError{Status: 500}}
	_, err := CommentForm{PostID: 1, Username: "taro", Body: "ok"}.Submit(context.Background(), be)
	var fe *FlowError
	if !errors.As(err, &fe) || !fe.Posted {
		t.Fatalf("expected posted flow error; got %v", err)
	}
}

func TestSuggestionSubmit(t *testing.T) {
	be := &fakeBackend{}
	if _, err := (SuggestionForm{Input: "   "}).Submit(context.Background(), be); Message(err) != MsgSuggestionRequired {
		t.Fatalf("expected blank input rejected; got %v", err)
	}
	if be.suggestCalls != 0 {
		t.Fatalf("expected no request")
	}

	sg, err := SuggestionForm{Input: " 雨の日 "}.Submit(context.Background(), be)
	if err != nil || sg.Title != "散歩" || be.lastSuggest != "雨の日" {
		t.Fatalf("unexpected result %v %v %q", sg, err, be.lastSuggest)
	}

	be.suggestErr = &api.ResultError{Message: "生成に失敗しました"}
	if _, err := (SuggestionForm{Input: "x"}).Submit(context.Background(), be); Message(err) != "生成に失敗しました" {
		t.Fatalf("expected server error message; got %v", err)
	}
}
