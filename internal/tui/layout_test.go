package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestFitPane_PadsAndTruncates(t *testing.T) {
	out := fitPane("abc\n水族館デート\nx", 6, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines; got %d", len(lines))
	}
	for i, ln := range lines {
		if w := xansi.StringWidth(ln); w != 6 {
			t.Fatalf("line %d width=%d: %q", i, w, ln)
		}
	}
	if !strings.HasSuffix(strings.TrimRight(lines[1], " "), "…") {
		t.Fatalf("expected ellipsis on truncated wide line; got %q", lines[1])
	}
}

func TestFitPane_ClipsHeight(t *testing.T) {
	out := fitPane("1\n2\n3", 2, 2)
	if out != "1 \n2 " {
		t.Fatalf("got %q", out)
	}
}

func TestColumns(t *testing.T) {
	nav, main, side := columns(120, true)
	if nav+main+side != 120 || side == 0 || main == 0 {
		t.Fatalf("unexpected split %d/%d/%d", nav, main, side)
	}
	nav, main, side = columns(120, false)
	if side != 0 || nav+main != 120 {
		t.Fatalf("unexpected split without sidebar %d/%d/%d", nav, main, side)
	}
	if nav, _, _ := columns(40, false); nav != 0 {
		t.Fatalf("expected nav hidden on narrow terminals")
	}
}
