package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// fitPane makes s exactly width columns by height lines (ANSI aware) so columns joined with
// lipgloss.JoinHorizontal line up. Long lines are cut with an ellipsis.
func fitPane(s string, width, height int) string {
	width = max(width, 0)
	height = max(height, 0)

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	switch {
	case width <= 0:
		return ""
	case w > width && width == 1:
		ln = xansi.Truncate(ln, 1, "")
	case w > width:
		ln = xansi.Truncate(ln, width, "…")
	}
	if w = xansi.StringWidth(ln); w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// wrapText soft-wraps plain text to width, breaking anywhere for text without spaces
// (Japanese plan bodies rarely have any).
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// columns splits the terminal width into nav, main and (optional) sidebar widths.
func columns(total int, withSidebar bool) (nav, main, side int) {
	nav = 18
	if total < 60 {
		nav = 0
	}
	rest := total - nav
	if !withSidebar {
		return nav, max(rest, 0), 0
	}
	side = rest * 2 / 5
	if side < 28 {
		side = min(28, rest/2)
	}
	main = rest - side
	return nav, max(main, 0), max(side, 0)
}
