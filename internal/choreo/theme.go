package choreo

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/savebutton/internal/anim"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
)

// Timing of every animated transition.
const (
	MorphDuration    = 250 * time.Millisecond // colors and width
	SuffixDuration   = 175 * time.Millisecond // each half of a suffix swap
	SpinPeriod       = 700 * time.Millisecond // one full turn
	ArcCloseDuration = 300 * time.Millisecond
	SequenceDelay    = 280 * time.Millisecond // entry to fill/check start
	FillDuration     = 200 * time.Millisecond
	CheckDuration    = 300 * time.Millisecond
)

// Geometry and physics.
const (
	// SuffixTravel is the vertical distance a suffix enters from and exits to.
	SuffixTravel = 10.0
	// RingRadius is the indicator ring radius in the 12x12 badge viewbox.
	RingRadius = 5.0
	// RestingArcFraction is the open part of the arc while spinning.
	RestingArcFraction = 0.67
	// Padding is the horizontal padding on each side of the label, in cells.
	Padding = 2

	BadgeStiffness = 500.0
	BadgeDamping   = 25.0
)

// Circumference of the indicator ring; the arc dash offset runs from
// RestingDashOffset (open) to 0 (closed).
var (
	Circumference     = 2 * math.Pi * RingRadius
	RestingDashOffset = Circumference * RestingArcFraction
)

// Labels is the label root and the per-state suffix appended to it.
type Labels struct {
	Root   string
	Idle   string
	Saving string
	Saved  string
}

// DefaultLabels spell Save / Saving / Saved.
func DefaultLabels() Labels {
	return Labels{Root: "Sav", Idle: "e", Saving: "ing", Saved: "ed"}
}

// Suffix returns the suffix shown in s.
func (l Labels) Suffix(s lifecycle.State) string {
	switch s {
	case lifecycle.Saving:
		return l.Saving
	case lifecycle.Saved:
		return l.Saved
	default:
		return l.Idle
	}
}

// Text returns the full label for s.
func (l Labels) Text(s lifecycle.State) string {
	return l.Root + l.Suffix(s)
}

// Width returns the container width for s in terminal cells.
func (l Labels) Width(s lifecycle.State) float64 {
	return float64(runewidth.StringWidth(l.Text(s)) + 2*Padding)
}

// Theme holds the two container colors, swapped between Idle and the
// busy/saved states, and the badge mark color.
type Theme struct {
	Light colorful.Color
	Dark  colorful.Color
	Mark  colorful.Color
}

// DefaultTheme is the light pill on dark background palette.
func DefaultTheme() Theme {
	return Theme{
		Light: anim.MustParseHex("#F0F0F0"),
		Dark:  anim.MustParseHex("#1F1F1F"),
		Mark:  anim.MustParseHex("#FFFFFF"),
	}
}

// Background returns the container background for s.
func (t Theme) Background(s lifecycle.State) colorful.Color {
	if s == lifecycle.Idle {
		return t.Light
	}
	return t.Dark
}

// Foreground returns the container text color for s.
func (t Theme) Foreground(s lifecycle.State) colorful.Color {
	if s == lifecycle.Idle {
		return t.Dark
	}
	return t.Light
}
