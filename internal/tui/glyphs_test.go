package tui

import "testing"

func TestGlyphs_FromEnvAndConfig(t *testing.T) {
	t.Setenv("DATESCORE_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected config to select ascii; got %v", got)
	}
	if glyphHeart(true) != "<3" || glyphHeart(false) != "</3" {
		t.Fatalf("unexpected ascii hearts %q %q", glyphHeart(true), glyphHeart(false))
	}

	// Env wins over config.
	t.Setenv("DATESCORE_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected env to win; got %v", got)
	}

	// Unknown values keep the current set.
	setGlyphs(glyphSetASCII)
	t.Setenv("DATESCORE_TUI_GLYPHS", "bogus")
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
	setGlyphs(glyphSetUnicode)
}
