package tui

import (
	"strings"

	"datescore-cli/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
)

// aiPage asks the backend for a plan and shows the answer as rendered markdown.
type aiPage struct {
	input   textarea.Model
	focused bool
	busy    bool
	gen     int
	err     string
	sg      *model.Suggestion
	out     viewport.Model
}

func newAIPage() *aiPage {
	ta := textarea.New()
	ta.Placeholder = "例: 初デートで、雨の日でも楽しめる都内のプランを考えてください"
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetHeight(4)
	return &aiPage{input: ta, out: viewport.New(0, 0)}
}

func (a *aiPage) focus() {
	a.focused = true
	a.input.Focus()
}

func (a *aiPage) blur() {
	a.focused = false
	a.input.Blur()
}

func (a *aiPage) resize(width, height int) {
	a.input.SetWidth(max(width-2, 10))
	// Header, label, textarea, hint and spacing sit above the answer.
	a.out.Width = max(width, 10)
	a.out.Height = max(height-a.input.Height()-6, 3)
	a.render()
}

func (a *aiPage) setSuggestion(sg *model.Suggestion) {
	a.sg = sg
	a.err = ""
	a.render()
	a.out.GotoTop()
}

func (a *aiPage) render() {
	if a.sg == nil {
		a.out.SetContent("")
		return
	}
	a.out.SetContent(renderMarkdown(suggestionMarkdown(*a.sg), a.out.Width))
}

func suggestionMarkdown(sg model.Suggestion) string {
	var b strings.Builder
	b.WriteString("## 💡 AIからの提案\n\n")
	title := strings.TrimSpace(sg.Title)
	if title == "" {
		title = "(untitled plan)"
	}
	b.WriteString("### " + title + "\n\n")
	section := func(h, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		b.WriteString("### " + h + "\n\n" + body + "\n\n")
	}
	section("📋 プラン詳細", sg.Description)
	section("💰 推定費用", sg.EstimatedCost)
	section("⏰ 所要時間", sg.Duration)
	section("💡 成功のコツ", sg.Tips)
	return b.String()
}

func (a *aiPage) view(width int, spin string) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("AIデートプラン考案") + "\n")
	b.WriteString(styleMuted().Render("ご要望・相談内容") + "\n")
	b.WriteString(a.input.View() + "\n")
	switch {
	case a.busy:
		b.WriteString(spin + " 考案中...\n")
	case a.err != "":
		b.WriteString(styleError().Render(wrapText(a.err, width)) + "\n")
	default:
		b.WriteString(styleMuted().Render("ctrl+s: 考案する") + "\n")
	}
	b.WriteString("\n")
	if a.sg != nil {
		b.WriteString(a.out.View())
	}
	return b.String()
}
