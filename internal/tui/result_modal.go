package tui

import (
	"fmt"
	"strings"

	"datescore-cli/internal/model"
	"datescore-cli/internal/submit"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// resultModal shows a scored submission over the current page until dismissed.
type resultModal struct {
	sub model.Submission
	res model.ScoreResult
	vp  viewport.Model
}

func newResultModal(sub model.Submission, res model.ScoreResult, width, height int) *resultModal {
	r := &resultModal{sub: sub, res: res, vp: viewport.New(0, 0)}
	r.resize(width, height)
	return r
}

func (r *resultModal) resize(width, height int) {
	r.vp.Width = max(min(width-8, 80), 20)
	r.vp.Height = max(height-8, 5)
	r.vp.SetContent(renderMarkdown(resultMarkdown(r.sub, r.res), r.vp.Width))
}

func resultMarkdown(sub model.Submission, res model.ScoreResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 診断結果\n\n**偏差値: %d**\n\n", res.Score)
	if lines := submit.Details(res); len(lines) > 0 {
		b.WriteString("| 項目 | スコア |\n|---|---|\n")
		for _, d := range lines {
			fmt.Fprintf(&b, "| %s | %d/100 |\n", d.Label, d.Score)
		}
		b.WriteString("\n")
	}
	if strings.TrimSpace(res.Comment) != "" {
		b.WriteString("### 🤖 AIからのコメント\n\n" + res.Comment + "\n\n")
	}
	b.WriteString("### 📝 投稿内容\n\n")
	for _, ln := range submit.Echo(sub) {
		b.WriteString("- " + ln + "\n")
	}
	return b.String()
}

func (r *resultModal) view(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorderActive).
		Padding(0, 1).
		Render(r.vp.View() + "\n" + styleMuted().Render("esc/enter: 閉じる  ↑/↓: スクロール"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
