// Package submit holds the client-side halves of the write flows: plan submission, comments
// and AI suggestions. Each flow validates locally first and never sends a request that fails
// validation.
package submit

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"datescore-cli/internal/api"
	"datescore-cli/internal/model"
)

const (
	MsgRequired = "必須項目をすべて入力してください。"
	MsgNumeric  = "年齢、デート回数、費用は数値で入力してください。"
)

var (
	Occupations = []string{"中学生", "高校生", "大学生", "会社員", "公務員", "フリーランス", "自営業", "医療従事者", "教職員", "その他"}
	Genders     = []string{"男性", "女性", "その他"}
	TimesOfDay  = []string{"朝", "昼", "夕方", "夜"}
)

var weekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// ValidationError blocks a submission before any request is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Plan is the submission form.
type Plan struct {
	Age             string
	Occupation      string
	Gender          string
	Date            string // YYYY-MM-DD
	TimeOfDay       string
	DateNumber      string
	Location        string
	Cost            string
	AdditionalNotes string
}

// DayOfWeek derives the weekday kanji from Date. ok is false when Date is not a valid
// YYYY-MM-DD date.
func DayOfWeek(date string) (string, bool) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(date))
	if err != nil {
		return "", false
	}
	return weekdays[t.Weekday()], true
}

// isNumeric accepts finite numbers only; ParseFloat also takes "NaN" and "Inf".
func isNumeric(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks required fields, then the numeric ones.
func (p Plan) Validate() error {
	_, dateOK := DayOfWeek(p.Date)
	required := []string{p.Age, p.Occupation, p.Gender, p.TimeOfDay, p.DateNumber, p.Location, p.Cost}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Message: MsgRequired}
		}
	}
	if !dateOK {
		return &ValidationError{Message: MsgRequired}
	}
	if !isNumeric(p.Age) || !isNumeric(p.DateNumber) || !isNumeric(p.Cost) {
		return &ValidationError{Message: MsgNumeric}
	}
	return nil
}

// Submission builds the request payload. Call Validate first.
func (p Plan) Submission() model.Submission {
	dow, _ := DayOfWeek(p.Date)
	return model.Submission{
		Age:             strings.TrimSpace(p.Age),
		Occupation:      p.Occupation,
		Gender:          p.Gender,
		Date:            strings.TrimSpace(p.Date),
		DayOfWeek:       dow,
		TimeOfDay:       p.TimeOfDay,
		DateNumber:      strings.TrimSpace(p.DateNumber),
		Location:        strings.TrimSpace(p.Location),
		Cost:            strings.TrimSpace(p.Cost),
		AdditionalNotes: strings.TrimSpace(p.AdditionalNotes),
	}
}

type PlanCreator interface {
	CreatePlan(ctx context.Context, sub model.Submission) (*model.ScoreResult, error)
}

// Submit validates and sends the plan. The returned error is either a *ValidationError or a
// *FlowError carrying the user-facing message.
func (p Plan) Submit(ctx context.Context, svc PlanCreator) (*model.ScoreResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	res, err := svc.CreatePlan(ctx, p.Submission())
	if err != nil {
		return nil, wrap(err)
	}
	return res, nil
}

// FlowError is a request failure with the message to show the user. Err keeps the cause
// for logs.
type FlowError struct {
	Message string
	Err     error

	// Posted is set when the write succeeded and a follow-up read failed.
	Posted bool
}

func (e *FlowError) Error() string { return e.Message }
func (e *FlowError) Unwrap() error { return e.Err }

func wrap(err error) error {
	return &FlowError{Message: api.UserMessage(err), Err: err}
}

// Message returns the text to render for any error returned by this package.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return api.UserMessage(err)
}
