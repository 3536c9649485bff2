package submit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"datescore-cli/internal/model"
)

// DetailLine is one row of the score breakdown.
type DetailLine struct {
	Label string
	Score int
}

// Details returns the breakdown in display order, or nil when the backend sent none.
func Details(r model.ScoreResult) []DetailLine {
	d := r.DetailedScores
	if d == nil {
		return nil
	}
	return []DetailLine{
		{"年齢適合性", d.AgeAppropriateness},
		{"コストパフォーマンス", d.CostEffectiveness},
		{"創造性", d.Creativity},
		{"バランス", d.Balance},
		{"関係性進展度", d.RelationshipProgress},
	}
}

// Echo renders the submitted form the way the result view lists it.
func Echo(s model.Submission) []string {
	cost := "0円"
	if strings.TrimSpace(s.Cost) != "" {
		cost = FormatYen(s.Cost)
	}
	lines := []string{
		"年齢: " + s.Age + "歳",
		"職業: " + s.Occupation,
		"性別: " + s.Gender,
		fmt.Sprintf("日時: %s (%s曜日) %s", s.Date, s.DayOfWeek, s.TimeOfDay),
		"回数: " + s.DateNumber + "回目",
		"費用: " + cost,
		"場所: " + s.Location,
	}
	if strings.TrimSpace(s.AdditionalNotes) != "" {
		lines = append(lines, "追記事項: "+s.AdditionalNotes)
	}
	return lines
}

// FormatYen renders a numeric cost with thousands separators. Non-numeric input is returned
// with the unit appended unchanged.
func FormatYen(cost string) string {
	cost = strings.TrimSpace(cost)
	n, err := strconv.ParseFloat(cost, 64)
	if err != nil {
		return cost + "円"
	}
	if n == float64(int64(n)) {
		return humanize.Comma(int64(n)) + "円"
	}
	return humanize.Commaf(n) + "円"
}
