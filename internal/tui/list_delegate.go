package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"datescore-cli/internal/like"
	"datescore-cli/internal/model"
	"datescore-cli/internal/selection"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// postDelegate renders ranking rows (4 lines) and search rows (3 lines).
type postDelegate struct {
	kind  page
	sel   selection.Reader
	likes *like.Set
}

func newPostDelegate(kind page, sel selection.Reader, likes *like.Set) postDelegate {
	return postDelegate{kind: kind, sel: sel, likes: likes}
}

func (d postDelegate) Height() int {
	if d.kind == pageRanking {
		return 4
	}
	return 3
}

func (d postDelegate) Spacing() int                            { return 1 }
func (d postDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d postDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(postItem)
	if !ok {
		return
	}
	width := m.Width()
	if width < 8 {
		return
	}

	var lines []string
	if d.kind == pageRanking {
		lines = d.rankingLines(it.post, index)
	} else {
		lines = d.searchLines(it.post)
	}

	marker := "  "
	if cur, ok := d.sel.Current(); ok && cur.ID == it.post.ID {
		marker = glyphPin()
		if lipgloss.Width(marker) < 2 {
			marker += " "
		}
	}
	cursor := index == m.Index()
	for i, ln := range lines {
		prefix := "  "
		if i == 0 {
			prefix = marker
		}
		ln = fitLine(prefix+ln, width)
		if cursor {
			ln = styleSelectedRow().Render(ln)
		}
		lines[i] = ln
	}
	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func (d postDelegate) rankingLines(p model.DatePlanPost, index int) []string {
	head := fmt.Sprintf("%s 第%d位 %s", glyphTrophy(), index+1, styleScore().Render(fmt.Sprintf("(偏差値: %d)", p.Score)))
	head += "  " + d.heart(p)

	subs := make([]string, 0, 5)
	for _, s := range p.SubScores() {
		subs = append(subs, s.Label+" "+strconv.Itoa(s.ScoreOr(0)))
	}
	return []string{
		head,
		styleMuted().Render(strings.Join(subs, " · ")),
		oneLine(p.Plan),
		styleMuted().Render("コメント: " + oneLine(p.Comment)),
	}
}

func (d postDelegate) searchLines(p model.DatePlanPost) []string {
	meta := joinNonEmpty(" · ", p.Age, p.Occupation, p.Gender)
	when := joinNonEmpty(" · ", p.DateTime, p.DateNumber, p.Location, p.Cost)
	return []string{
		styleScore().Render(fmt.Sprintf("偏差値 %d", p.Score)) + "  " + meta,
		oneLine(p.Plan),
		styleMuted().Render(when),
	}
}

func (d postDelegate) heart(p model.DatePlanPost) string {
	liked, count, busy := false, p.LikeCount, false
	if t, ok := d.likes.Lookup(model.LikePlan, p.ID); ok {
		liked, count, busy = t.View()
	}
	s := glyphHeart(liked) + " " + strconv.Itoa(count)
	if busy {
		return styleMuted().Render(s)
	}
	return s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
