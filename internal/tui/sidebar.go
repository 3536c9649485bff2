package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"datescore-cli/internal/like"
	"datescore-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

const sidebarEmptyHint = "ランキングからデートプランを選択してコメントを表示"

var sidebarScoreLabels = [...]string{"年齢・職業適正", "費用対効果", "創意工夫", "全体バランス", "関係性進展"}

type sidebarFocus int

const (
	focusNone sidebarFocus = iota
	focusUsername
	focusBody
)

// sidebar is the detail panel next to the ranking list. It renders whatever the shared
// selection holds and owns the comment thread of that post.
type sidebar struct {
	postID   int64
	comments []model.Comment
	gen      uint64
	loading  bool
	err      string
	cursor   int

	focus    sidebarFocus
	username textinput.Model
	body     textinput.Model
	formErr  string
	posting  bool
}

func newSidebar(username string) *sidebar {
	u := textinput.New()
	u.Placeholder = "ユーザー名"
	u.Prompt = ""
	u.CharLimit = 50
	u.SetValue(username)

	b := textinput.New()
	b.Placeholder = "コメントを入力してください..."
	b.Prompt = ""
	b.CharLimit = 500

	return &sidebar{username: u, body: b}
}

// reset forgets the post and its thread; the typed username survives.
func (s *sidebar) reset() {
	s.postID = 0
	s.comments = nil
	s.gen++
	s.loading = false
	s.err = ""
	s.cursor = 0
	s.formErr = ""
	s.posting = false
	s.body.SetValue("")
	s.blur()
}

func (s *sidebar) setFocus(f sidebarFocus) {
	s.focus = f
	switch f {
	case focusUsername:
		s.body.Blur()
		s.username.Focus()
	case focusBody:
		s.username.Blur()
		s.body.Focus()
	default:
		s.blur()
	}
}

func (s *sidebar) blur() {
	s.focus = focusNone
	s.username.Blur()
	s.body.Blur()
}

func (s *sidebar) moveCursor(delta int) {
	if len(s.comments) == 0 {
		s.cursor = 0
		return
	}
	s.cursor = min(max(s.cursor+delta, 0), len(s.comments)-1)
}

func (s *sidebar) cursorComment() (model.Comment, bool) {
	if s.cursor < 0 || s.cursor >= len(s.comments) {
		return model.Comment{}, false
	}
	return s.comments[s.cursor], true
}

func (s *sidebar) patchComment(id int64, count int) {
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments[i].LikeCount = count
		}
	}
}

func (s *sidebar) view(post model.DatePlanPost, ok bool, likes *like.Set, width int) string {
	if !ok {
		return styleMuted().Render(wrapText(sidebarEmptyHint, width))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", styleScore().Render(fmt.Sprintf("偏差値 %d", post.Score)), likeControl(likes, model.LikePlan, post.ID, post.LikeCount))
	for i, sc := range post.SubScores() {
		fmt.Fprintf(&b, "%s %s\n", styleMuted().Render(sidebarScoreLabels[i]), strconv.Itoa(sc.NonZeroOr(50)))
	}

	b.WriteString("\n" + styleHeading().Render("📝 投稿内容") + "\n")
	b.WriteString(wrapText(post.Plan, width) + "\n")
	if strings.TrimSpace(post.Comment) != "" {
		b.WriteString("\n" + styleHeading().Render("🤖 AIからのコメント") + "\n")
		b.WriteString(wrapText(post.Comment, width) + "\n")
	}

	b.WriteString("\n" + styleHeading().Render(fmt.Sprintf("%sコメント (%d)", glyphComment(), len(s.comments))) + "\n")
	b.WriteString(s.formView(width))
	switch {
	case s.loading:
		b.WriteString(styleMuted().Render("読み込み中...") + "\n")
	case s.err != "":
		b.WriteString(styleError().Render(wrapText(s.err, width)) + "\n")
	case len(s.comments) == 0:
		b.WriteString(styleMuted().Render("まだコメントはありません") + "\n")
	default:
		// Keep the cursor in view by starting a couple of comments above it.
		start := max(0, s.cursor-2)
		for i, c := range s.comments[start:] {
			b.WriteString(s.commentView(c, start+i == s.cursor, likes, width))
		}
	}
	return b.String()
}

func (s *sidebar) formView(width int) string {
	var b strings.Builder
	s.username.Width = max(width-12, 8)
	s.body.Width = max(width-12, 8)
	b.WriteString(styleMuted().Render("ユーザー名 ") + s.username.View() + "\n")
	b.WriteString(styleMuted().Render("コメント   ") + s.body.View() + "\n")
	switch {
	case s.posting:
		b.WriteString(styleMuted().Render("送信中...") + "\n")
	case s.formErr != "":
		b.WriteString(styleError().Render(wrapText(s.formErr, width)) + "\n")
	}
	return b.String()
}

func (s *sidebar) commentView(c model.Comment, cursor bool, likes *like.Set, width int) string {
	mark := "  "
	if cursor {
		mark = glyphCursor() + " "
	}
	head := mark + styleHeading().Render(c.Username)
	if when := commentTime(c.CreatedAt); when != "" {
		head += styleMuted().Render(" · " + when)
	}
	head += "  " + likeControl(likes, model.LikeComment, c.ID, c.LikeCount)
	return head + "\n" + wrapText(c.Body, max(width-2, 1)) + "\n"
}

func likeControl(likes *like.Set, kind model.LikeKind, id int64, initial int) string {
	liked, count, busy := false, initial, false
	if t, ok := likes.Lookup(kind, id); ok {
		liked, count, busy = t.View()
	}
	s := glyphHeart(liked) + " " + strconv.Itoa(count)
	if busy {
		return styleMuted().Render(s)
	}
	return s
}

var commentTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"}

// commentTime renders the backend timestamp relative to now; unparseable values are shown as is.
func commentTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if layout, ok := lo.Find(commentTimeLayouts, func(l string) bool {
		_, err := time.Parse(l, raw)
		return err == nil
	}); ok {
		t, _ := time.Parse(layout, raw)
		return humanize.Time(t)
	}
	return raw
}
