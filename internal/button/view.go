package button

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/savebutton/internal/anim"
	"github.com/rileyhilliard/savebutton/internal/choreo"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
)

// pillHeight is the cap row, the label row and the bottom cap row.
const pillHeight = 3

// footerHeight is the status line plus the help line.
const footerHeight = 2

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type screenLayout struct {
	pill rect
}

// layout centers the pill in the area above the footer.
func (m Model) layout(f choreo.Frame) screenLayout {
	w := pillWidth(f)
	areaH := m.height - footerHeight
	x := 0
	if m.width > w {
		x = (m.width - w) / 2
	}
	y := 0
	if areaH > pillHeight {
		y = (areaH - pillHeight) / 2
	}
	return screenLayout{pill: rect{x: x, y: y, w: w, h: pillHeight}}
}

func pillWidth(f choreo.Frame) int {
	w := int(math.Round(f.Width))
	if w < 1 {
		w = 1
	}
	return w
}

// View renders the button, its status line and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	f := m.driver.Frame()
	l := m.layout(f)
	indent := strings.Repeat(" ", l.pill.x)

	var b strings.Builder
	for i := 0; i < l.pill.y; i++ {
		b.WriteString("\n")
	}
	for _, line := range m.renderPill(f) {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}

	areaH := m.height - footerHeight
	for i := l.pill.y + pillHeight; i < areaH; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus(f))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderPill draws the three pill rows with the badge overlapping the top
// right corner.
func (m Model) renderPill(f choreo.Frame) []string {
	bg := anim.MustParseHex(f.Background)
	fg := anim.MustParseHex(f.Foreground)
	w := pillWidth(f)

	badge := m.renderBadge(f)
	top := ink(strings.Repeat(capTop, w-1), bg) + badge
	bottom := ink(strings.Repeat(capBottom, w), bg)

	return []string{top, renderLabel(f, w, bg, fg), bottom}
}

// renderLabel centers root+suffix in w cells. The suffix is clipped once it
// has travelled half way out of its line, like overflow on a fixed-height
// box.
func renderLabel(f choreo.Frame, w int, bg, fg colorful.Color) string {
	suffix := f.Suffix
	if math.Abs(f.SuffixOffset) >= choreo.SuffixTravel/2 {
		suffix = strings.Repeat(" ", runewidth.StringWidth(suffix))
	}

	textW := runewidth.StringWidth(f.Root) + runewidth.StringWidth(suffix)
	left := (w - textW) / 2
	if left < 0 {
		left = 0
	}
	right := w - textW - left
	if right < 0 {
		right = 0
	}

	root := f.Root
	if textW > w {
		// Width is still catching up with a longer label.
		root = runewidth.Truncate(root, w, "")
		suffix = runewidth.Truncate(suffix, w-runewidth.StringWidth(root), "")
	}

	suffixFg := anim.Fade(fg, bg, f.SuffixOpacity)
	return fill(strings.Repeat(" ", left), bg, fg, false) +
		fill(root, bg, fg, true) +
		fill(suffix, bg, suffixFg, true) +
		fill(strings.Repeat(" ", right), bg, fg, false)
}

// renderBadge draws the indicator in one cell.
func (m Model) renderBadge(f choreo.Frame) string {
	glyph, fg, bg := Indicator(f, m.theme)
	if glyph == " " {
		return " "
	}
	return fill(glyph, bg, fg, false)
}

// Indicator picks the badge glyph and its colors for a frame. The badge
// background is the theme's dark color; its mark fades with the badge.
func Indicator(f choreo.Frame, theme choreo.Theme) (glyph string, fg, bg colorful.Color) {
	bg = theme.Dark
	mark := anim.Fade(theme.Mark, theme.Dark, f.BadgeOpacity)

	switch {
	case f.BadgeScale < 0.1:
		return " ", mark, bg
	case f.BadgeScale < 0.5:
		return SymbolShrunk, mark, bg
	case f.FillOpacity >= 0.5 && f.CheckProgress >= 0.5:
		// Check stroke in the dark color on the filled disc.
		return SymbolCheck, theme.Dark, anim.Fade(mark, theme.Dark, f.FillOpacity)
	case f.FillOpacity >= 0.5:
		return SymbolDisc, mark, bg
	case f.ArcClosure() >= 0.95:
		return SymbolRing, anim.Fade(mark, theme.Dark, math.Max(f.ArcOpacity, f.TrackOpacity)), bg
	default:
		frames := IndicatorFrames.Frames
		i := int(f.Rotation/90) % len(frames)
		if i < 0 {
			i += len(frames)
		}
		return frames[i], anim.Fade(mark, theme.Dark, f.ArcOpacity), bg
	}
}

func (m Model) renderStatus(f choreo.Frame) string {
	var parts []string
	switch f.State {
	case lifecycle.Saving:
		parts = append(parts, busyStyle.Render("busy · input disabled"))
	case lifecycle.Saved:
		parts = append(parts, statusStyle.Render("saved · press again or click outside to reset"))
	default:
		parts = append(parts, statusStyle.Render("ready"))
	}
	if m.driver.ReducedMotion() {
		parts = append(parts, motionStyle.Render("reduced motion"))
	}
	return strings.Join(parts, statusStyle.Render(" · "))
}
