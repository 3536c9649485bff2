package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle can block on terminal queries, so a fixed
	// style is resolved once and the renderer reused.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders md wrapped to width. Rendering errors fall back to the raw text.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	cfg := styles.DarkStyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	}
	// Headings follow the body text color; the AI suggestion uses several levels and the
	// default palette makes them compete with the plan text.
	text := mdColor(colorSelectedFg, styleName)
	cfg.H1.Color = text
	cfg.H2.Color = text
	cfg.H3.Color = text
	cfg.H4.Color = text
	cfg.H1.BackgroundColor = nil
	cfg.Strong.Color = nil
	cfg.BlockQuote.Faint = mdBoolPtr(false)
	return cfg
}

// markdownStyle picks "light" or "dark" without querying the terminal.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DATESCORE_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func mdColor(c lipgloss.TerminalColor, styleName string) *string {
	ad, ok := c.(lipgloss.AdaptiveColor)
	if !ok {
		return nil
	}
	if styleName == "light" {
		return mdStrPtr(ad.Light)
	}
	return mdStrPtr(ad.Dark)
}

func mdStrPtr(s string) *string { return &s }
func mdBoolPtr(b bool) *bool    { return &b }
