package config

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rileyhilliard/savebutton/internal/anim"
	"github.com/rileyhilliard/savebutton/internal/choreo"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .savebutton.yaml configuration file.
type Config struct {
	Version       int           `yaml:"version" mapstructure:"version"`
	SaveDelay     time.Duration `yaml:"save_delay" mapstructure:"save_delay"`
	ReducedMotion bool          `yaml:"reduced_motion" mapstructure:"reduced_motion"`
	FPS           int           `yaml:"fps" mapstructure:"fps"`
	Theme         ThemeConfig   `yaml:"theme" mapstructure:"theme"`
	Label         LabelConfig   `yaml:"label" mapstructure:"label"`
}

// ThemeConfig holds "#RRGGBB" colors.
type ThemeConfig struct {
	// Light is the idle background and the busy/saved text color.
	Light string `yaml:"light" mapstructure:"light"`

	// Dark is the idle text color and the busy/saved background.
	Dark string `yaml:"dark" mapstructure:"dark"`

	// BadgeMark is the color of the spinner ring and the filled disc.
	BadgeMark string `yaml:"badge_mark" mapstructure:"badge_mark"`
}

// LabelConfig is the shared label root plus one suffix per state.
type LabelConfig struct {
	Root   string `yaml:"root" mapstructure:"root"`
	Idle   string `yaml:"idle" mapstructure:"idle"`
	Saving string `yaml:"saving" mapstructure:"saving"`
	Saved  string `yaml:"saved" mapstructure:"saved"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	labels := choreo.DefaultLabels()
	return &Config{
		Version:       CurrentConfigVersion,
		SaveDelay:     lifecycle.DefaultDelay,
		ReducedMotion: false,
		FPS:           60,
		Theme: ThemeConfig{
			Light:     "#F0F0F0",
			Dark:      "#1F1F1F",
			BadgeMark: "#FFFFFF",
		},
		Label: LabelConfig{
			Root:   labels.Root,
			Idle:   labels.Idle,
			Saving: labels.Saving,
			Saved:  labels.Saved,
		},
	}
}

// Labels converts the label section for the choreography driver.
func (c *Config) Labels() choreo.Labels {
	return choreo.Labels{
		Root:   c.Label.Root,
		Idle:   c.Label.Idle,
		Saving: c.Label.Saving,
		Saved:  c.Label.Saved,
	}
}

// Palette converts the theme section. Call Validate first; invalid colors
// fall back to the default palette.
func (c *Config) Palette() choreo.Theme {
	def := choreo.DefaultTheme()
	return choreo.Theme{
		Light: parseOr(c.Theme.Light, def.Light),
		Dark:  parseOr(c.Theme.Dark, def.Dark),
		Mark:  parseOr(c.Theme.BadgeMark, def.Mark),
	}
}

// FrameInterval is the TUI tick period.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

func parseOr(hex string, fallback colorful.Color) colorful.Color {
	col, err := anim.ParseHex(hex)
	if err != nil {
		return fallback
	}
	return col
}
