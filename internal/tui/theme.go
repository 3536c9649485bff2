package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. AdaptiveColor keeps the UI readable on light and dark terminals; faint text is
// only used on dark backgrounds where it stays legible.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted        lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg     lipgloss.TerminalColor = ac("240", "245")
	colorSelectedBg   lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg   lipgloss.TerminalColor = ac("235", "255")
	colorBorder       lipgloss.TerminalColor = ac("250", "243")
	colorBorderActive lipgloss.TerminalColor = ac("232", "255")
	colorAccent       lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg     lipgloss.TerminalColor = ac("255", "235")
	colorError        lipgloss.TerminalColor = ac("160", "203")
	colorScore        lipgloss.TerminalColor = ac("130", "220") // gold
	colorModalBg      lipgloss.TerminalColor = ac("255", "235")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeading() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleScore() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorScore).Bold(true)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
}

func styleNavActive() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorAccent).Foreground(colorAccentFg).Bold(true)
}

func stylePanel(active bool) lipgloss.Style {
	c := colorBorder
	if active {
		c = colorBorderActive
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts TERM/COLORTERM over the
// detector, which under-reports on some terminals. CLICOLOR is ignored: it is meant for
// non-interactive output.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference fixes the background guess when the terminal does not report it.
//
// Priority:
// 1) DATESCORE_TUI_THEME=light|dark|auto
// 2) COLORFGBG ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DATESCORE_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
