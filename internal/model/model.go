package model

import "strconv"

// DatePlanPost is a scored date plan as served by the ranking and search endpoints.
//
// Submission metadata is kept as the display strings the backend stores
// ("25歳", "3回目", "3000円"); numeric views are derived on the client.
type DatePlanPost struct {
	ID    int64 `json:"id"`
	Score int   `json:"score"`

	AgeAppropriatenessScore   *int `json:"age_appropriateness_score,omitempty"`
	CostEffectivenessScore    *int `json:"cost_effectiveness_score,omitempty"`
	CreativityScore           *int `json:"creativity_score,omitempty"`
	BalanceScore              *int `json:"balance_score,omitempty"`
	RelationshipProgressScore *int `json:"relationship_progress_score,omitempty"`

	Plan    string `json:"plan"`
	Comment string `json:"comment"`

	LikeCount int `json:"like_count"`

	Age             string `json:"age"`
	Occupation      string `json:"occupation"`
	Gender          string `json:"gender"`
	DateTime        string `json:"date_time"`
	DateNumber      string `json:"date_number"`
	Location        string `json:"location"`
	Cost            string `json:"cost"`
	AdditionalNotes string `json:"additional_notes"`
}

// SubScore is one of the five detailed scores of a post.
type SubScore struct {
	Key   string
	Label string
	Value *int
}

// SubScores lists the detailed scores in display order.
func (p DatePlanPost) SubScores() []SubScore {
	return []SubScore{
		{Key: "age_appropriateness", Label: "年齢適正", Value: p.AgeAppropriatenessScore},
		{Key: "cost_effectiveness", Label: "費用効果", Value: p.CostEffectivenessScore},
		{Key: "creativity", Label: "創意工夫", Value: p.CreativityScore},
		{Key: "balance", Label: "バランス", Value: p.BalanceScore},
		{Key: "relationship_progress", Label: "関係進展", Value: p.RelationshipProgressScore},
	}
}

// ScoreOr returns the score value or def when the backend did not send one.
func (s SubScore) ScoreOr(def int) int {
	if s.Value == nil {
		return def
	}
	return *s.Value
}

// NonZeroOr is ScoreOr that also treats an explicit 0 as unscored.
func (s SubScore) NonZeroOr(def int) int {
	if v := s.ScoreOr(0); v != 0 {
		return v
	}
	return def
}

func (p DatePlanPost) IDString() string { return strconv.FormatInt(p.ID, 10) }

// Comment is a user comment attached to a post.
type Comment struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"date_plan_id,omitempty"`
	Username  string `json:"username"`
	Body      string `json:"comment"`
	CreatedAt string `json:"created_at"`
	LikeCount int    `json:"like_count"`
}

// LikeKind is the entity kind a like is scoped to.
type LikeKind string

const (
	LikePlan    LikeKind = "plan"
	LikeComment LikeKind = "comment"
)

func (k LikeKind) Valid() bool {
	return k == LikePlan || k == LikeComment
}

// LikeState is the server truth for one (device, entity) pair.
type LikeState struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Submission is the date plan form as the backend expects it.
type Submission struct {
	Age             string `json:"age"`
	Occupation      string `json:"occupation"`
	Gender          string `json:"gender"`
	Date            string `json:"date"`
	DayOfWeek       string `json:"dayOfWeek"`
	TimeOfDay       string `json:"timeOfDay"`
	DateNumber      string `json:"dateNumber"`
	Location        string `json:"location"`
	Cost            string `json:"cost"`
	AdditionalNotes string `json:"additionalNotes"`
}

// DetailedScores is the score breakdown returned for a new submission.
type DetailedScores struct {
	AgeAppropriateness   int `json:"age_appropriateness"`
	CostEffectiveness    int `json:"cost_effectiveness"`
	Creativity           int `json:"creativity"`
	Balance              int `json:"balance"`
	RelationshipProgress int `json:"relationship_progress"`
}

// ScoreResult is the response to a submission.
type ScoreResult struct {
	Score          int             `json:"score"`
	Comment        string          `json:"comment"`
	Plan           string          `json:"plan"`
	DetailedScores *DetailedScores `json:"detailed_scores,omitempty"`
}

// Post converts the result into the post shape the list and sidebar render.
// The backend does not return the new post id, so ID stays zero.
func (r ScoreResult) Post(s Submission) DatePlanPost {
	p := DatePlanPost{
		Score:      r.Score,
		Plan:       r.Plan,
		Comment:    r.Comment,
		Age:        s.Age,
		Occupation: s.Occupation,
		Gender:     s.Gender,
		DateTime:   s.Date + " (" + s.DayOfWeek + "曜日) " + s.TimeOfDay,
		DateNumber: s.DateNumber,
		Location:   s.Location,
		Cost:       s.Cost,

		AdditionalNotes: s.AdditionalNotes,
	}
	if d := r.DetailedScores; d != nil {
		p.AgeAppropriatenessScore = intPtr(d.AgeAppropriateness)
		p.CostEffectivenessScore = intPtr(d.CostEffectiveness)
		p.CreativityScore = intPtr(d.Creativity)
		p.BalanceScore = intPtr(d.Balance)
		p.RelationshipProgressScore = intPtr(d.RelationshipProgress)
	}
	return p
}

// Suggestion is an AI generated date plan.
type Suggestion struct {
	Title         string `json:"plan_title"`
	Description   string `json:"plan_description"`
	EstimatedCost string `json:"estimated_cost"`
	Duration      string `json:"duration"`
	Tips          string `json:"tips"`
}

func intPtr(v int) *int { return &v }
