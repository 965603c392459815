package button

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Chrome colors using ANSI codes so the help and status lines follow the
// terminal palette. The button itself uses the configured true colors.
const (
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorWarning   lipgloss.Color = "3" // Yellow
)

// Symbols drawn inside the badge.
const (
	SymbolCheck  = "✓" // saved, check drawn
	SymbolDisc   = "●" // saved, disc filled
	SymbolRing   = "○" // arc closed, not yet filled
	SymbolShrunk = "·" // badge entering or leaving
)

// Pill caps drawn above and below the label row.
const (
	capTop    = "▄"
	capBottom = "▀"
)

// IndicatorFrames are the quarter-turn spinner glyphs, indexed by rotation.
var IndicatorFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	busyStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	motionStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// fill renders text with a true-color background and foreground.
func fill(text string, bg, fg colorful.Color, bold bool) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Bold(bold).
		Render(text)
}

// ink renders text in a true-color foreground only.
func ink(text string, fg colorful.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg.Hex())).Render(text)
}
