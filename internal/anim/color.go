package anim

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Color morphs between colors. Retargeting starts from the color currently
// shown, so an interrupted morph never snaps.
type Color struct {
	from     colorful.Color
	to       colorful.Color
	progress Param
}

// NewColor returns a resting color.
func NewColor(c colorful.Color) Color {
	return Color{from: c, to: c, progress: NewParam(1)}
}

// ParseHex parses a "#RRGGBB" color.
func ParseHex(s string) (colorful.Color, error) {
	return colorful.Hex(s)
}

// MustParseHex is ParseHex for compile-time constants.
func MustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Value returns the color currently shown.
func (c *Color) Value() colorful.Color {
	return c.from.BlendRgb(c.to, c.progress.Value()).Clamped()
}

// Hex returns the current color as "#rrggbb".
func (c *Color) Hex() string {
	return c.Value().Hex()
}

// Target returns the color being morphed to.
func (c *Color) Target() colorful.Color {
	return c.to
}

// Active reports whether a morph is in flight.
func (c *Color) Active() bool {
	return c.progress.Active()
}

// AnimateTo morphs to target over d.
func (c *Color) AnimateTo(target colorful.Color, d time.Duration, easing Easing) {
	c.from = c.Value()
	c.to = target
	c.progress.Set(0)
	c.progress.AnimateTo(1, d, easing)
}

// Set jumps to target.
func (c *Color) Set(target colorful.Color) {
	c.from = target
	c.to = target
	c.progress.Set(1)
}

// Step advances the morph by dt.
func (c *Color) Step(dt time.Duration) bool {
	return c.progress.Step(dt)
}

// Stop freezes the color currently shown.
func (c *Color) Stop() {
	c.Set(c.Value())
}

// Fade blends c toward bg by 1-opacity; opacity 1 returns c unchanged.
func Fade(c, bg colorful.Color, opacity float64) colorful.Color {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return bg
	}
	return bg.BlendRgb(c, opacity).Clamped()
}
