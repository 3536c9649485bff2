package tui

import (
	"os"
	"strings"
	"sync"

	"datescore-cli/internal/like"
)

// Some fonts render emoji poorly; the ASCII set swaps every decorative glyph for plain text.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference applies DATESCORE_TUI_GLYPHS, falling back to the config value.
// Unknown values are ignored.
func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DATESCORE_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

func asciiGlyphs() bool { return glyphs() == glyphSetASCII }

func glyphHeart(liked bool) string { return like.Glyph(liked, asciiGlyphs()) }

func glyphTrophy() string {
	if asciiGlyphs() {
		return "#"
	}
	return "🏆"
}

func glyphPin() string {
	if asciiGlyphs() {
		return "*"
	}
	return "📌"
}

func glyphCursor() string {
	if asciiGlyphs() {
		return ">"
	}
	return "▸"
}

func glyphHRule() string {
	if asciiGlyphs() {
		return "-"
	}
	return "─"
}

func glyphComment() string {
	if asciiGlyphs() {
		return ""
	}
	return "💬 "
}
