package choreo

import (
	"time"

	"github.com/rileyhilliard/savebutton/internal/anim"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
)

// Frame is every value the rendering boundary needs at one instant.
type Frame struct {
	Time  time.Duration   `yaml:"t" json:"t"`
	State lifecycle.State `yaml:"state" json:"state"`
	Busy  bool            `yaml:"busy" json:"busy"`

	Label         string  `yaml:"label" json:"label"`
	Root          string  `yaml:"root" json:"root"`
	Suffix        string  `yaml:"suffix" json:"suffix"`
	SuffixOpacity float64 `yaml:"suffix_opacity" json:"suffix_opacity"`
	SuffixOffset  float64 `yaml:"suffix_offset" json:"suffix_offset"`

	Background string  `yaml:"background" json:"background"`
	Foreground string  `yaml:"foreground" json:"foreground"`
	Width      float64 `yaml:"width" json:"width"`

	BadgeScale    float64 `yaml:"badge_scale" json:"badge_scale"`
	BadgeOpacity  float64 `yaml:"badge_opacity" json:"badge_opacity"`
	Rotation      float64 `yaml:"rotation" json:"rotation"`
	DashOffset    float64 `yaml:"dash_offset" json:"dash_offset"`
	FillOpacity   float64 `yaml:"fill_opacity" json:"fill_opacity"`
	CheckProgress float64 `yaml:"check_progress" json:"check_progress"`
	TrackOpacity  float64 `yaml:"track_opacity" json:"track_opacity"`
	ArcOpacity    float64 `yaml:"arc_opacity" json:"arc_opacity"`
}

// Frame samples the driver.
func (d *Driver) Frame() Frame {
	fill := d.fill.Value()
	return Frame{
		Time:          d.elapsed,
		State:         d.state,
		Busy:          d.state == lifecycle.Saving,
		Label:         d.labels.Text(d.state),
		Root:          d.labels.Root,
		Suffix:        d.suffix.shown,
		SuffixOpacity: d.suffix.opacity.Value(),
		SuffixOffset:  d.suffix.offset.Value(),
		Background:    d.background.Hex(),
		Foreground:    d.foreground.Hex(),
		Width:         d.width.Value(),
		BadgeScale:    d.badgeScale.Value(),
		BadgeOpacity:  d.badgeOpacity.Value(),
		Rotation:      d.rotation.Value(),
		DashOffset:    d.dashOffset.Value(),
		FillOpacity:   fill,
		CheckProgress: d.check.Value(),
		TrackOpacity:  TrackOpacity(fill),
		ArcOpacity:    ArcOpacity(fill),
	}
}

// TrackOpacity is the faint full ring behind the arc; it fades out as the
// disc fills.
func TrackOpacity(fill float64) float64 {
	return anim.Map(fill, 0, 1, 0.2, 0)
}

// ArcOpacity is gone by the time the fill reaches half way.
func ArcOpacity(fill float64) float64 {
	return anim.Map(fill, 0, 0.5, 1, 0)
}

// ArcClosure is the drawn fraction of the ring: 0.33 while spinning, 1 once
// the arc has closed.
func (f Frame) ArcClosure() float64 {
	return 1 - f.DashOffset/Circumference
}
