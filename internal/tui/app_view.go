package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.result != nil {
		return m.result.view(m.width, m.height)
	}

	bodyH := m.bodyHeight()
	navW, mainW, sideW := columns(m.width, m.page == pageRanking)

	cols := make([]string, 0, 5)
	rule := m.verticalRule(bodyH)
	if navW > 0 {
		cols = append(cols, fitPane(m.navView(), navW-1, bodyH), rule)
	}
	mainView := m.mainView(mainW)
	if sideW > 0 {
		cols = append(cols, fitPane(mainView, mainW-1, bodyH), rule)
		cur, ok := m.sel.Current()
		cols = append(cols, fitPane(m.side.view(cur, ok, m.likes, sideW-2), sideW, bodyH))
	} else {
		cols = append(cols, fitPane(mainView, mainW, bodyH))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return body + "\n" + m.footerView()
}

func (m appModel) verticalRule(height int) string {
	ch := "│"
	if asciiGlyphs() {
		ch = "|"
	}
	lines := make([]string, max(height, 1))
	for i := range lines {
		lines[i] = ch
	}
	return styleMuted().Render(strings.Join(lines, "\n"))
}

func (m appModel) navView() string {
	var b strings.Builder
	b.WriteString(styleHeading().Render("datescore") + "\n\n")
	for i, p := range pages {
		label := fmt.Sprintf("%d %s", i+1, p.label())
		if p == m.page {
			b.WriteString(styleNavActive().Render(label) + "\n")
			continue
		}
		b.WriteString(label + "\n")
	}
	return b.String()
}

func (m appModel) mainView(width int) string {
	switch m.page {
	case pageRanking:
		return m.feedView(m.ranking, "殿堂入りランキング "+glyphTrophy(), width)
	case pageSearch:
		return m.searchView(width)
	case pageAI:
		return m.ai.view(width, m.spin.View())
	default:
		return m.form.view(width)
	}
}

func (m appModel) feedView(p *feedPage, title string, width int) string {
	var b strings.Builder
	b.WriteString(styleHeading().Render(title) + "\n")
	if p == nil {
		return b.String()
	}
	switch {
	case p.loading && !p.loaded:
		b.WriteString(m.spin.View() + " 読み込み中...\n")
		return b.String()
	case p.err != "":
		b.WriteString(styleError().Render(wrapText(p.err, width)) + "\n")
		if !p.loaded {
			return b.String()
		}
	default:
		b.WriteString("\n")
	}
	b.WriteString(p.list.View())
	return b.String()
}

func (m appModel) searchView(width int) string {
	p := m.search
	var b strings.Builder
	b.WriteString(m.searchInput.View() + "\n")

	modes := "[a]年齢 [m]男性 [f]女性 [n]回数 [c]費用 [0]リセット"
	if p != nil && p.mode != "" {
		modes = styleNavActive().Render(p.mode) + "  " + styleMuted().Render(modes)
	} else {
		modes = styleMuted().Render(modes)
	}
	b.WriteString(modes + "\n")

	switch {
	case p == nil:
	case p.loading && !p.loaded:
		b.WriteString(m.spin.View() + " 検索中...\n")
	case p.err != "":
		b.WriteString(styleError().Render(wrapText(p.err, width)) + "\n")
		if p.loaded {
			b.WriteString(p.list.View())
		}
	case p.loaded && p.coll.Len() == 0:
		b.WriteString("\n" + styleMuted().Render("該当する投稿は見つかりませんでした。") + "\n")
	default:
		b.WriteString("\n" + p.list.View())
	}
	return b.String()
}

func (m appModel) footerView() string {
	var hint string
	switch {
	case m.searchFocus:
		hint = "enter: 検索  esc: 戻る"
	case m.side.focus != focusNone:
		hint = "enter: 次へ/送信  tab: 切替  esc: 戻る"
	case m.form.editing, m.ai.focused:
		hint = "esc: 入力終了  ctrl+s: 送信"
	case m.page == pageRanking:
		hint = "enter: 選択  l: いいね  c: コメント  [/]: コメント移動  L: コメントにいいね  r: 更新"
	case m.page == pageSearch:
		hint = "/: キーワード  enter: 選択  r: 更新"
	case m.page == pageAI:
		hint = "i: 入力  ctrl+s: 考案する"
	default:
		hint = "↑/↓: 移動  ←/→: 選択  enter: 入力  ctrl+s: 診断する"
	}
	hint += "  1-4/tab: ページ  q: 終了"
	line := glyphHRule()
	rule := styleMuted().Render(strings.Repeat(line, max(m.width, 1)))
	return rule + "\n" + fitLine(styleMuted().Render(hint), m.width)
}
