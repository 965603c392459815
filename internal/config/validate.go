package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/savebutton/internal/anim"
	"github.com/rileyhilliard/savebutton/internal/errors"
)

// Bounds for tunable values.
const (
	MinSaveDelay = 100 * time.Millisecond
	MaxSaveDelay = time.Minute
	MinFPS       = 1
	MaxFPS       = 240
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but savebutton only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade savebutton or lower the version field.")
	}

	if cfg.SaveDelay < MinSaveDelay || cfg.SaveDelay > MaxSaveDelay {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("save_delay %s is out of range", cfg.SaveDelay),
			fmt.Sprintf("Pick something between %s and %s, like 3s.", MinSaveDelay, MaxSaveDelay))
	}

	if cfg.FPS < MinFPS || cfg.FPS > MaxFPS {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("fps %d is out of range", cfg.FPS),
			fmt.Sprintf("Use a frame rate between %d and %d.", MinFPS, MaxFPS))
	}

	if err := validateTheme(cfg.Theme); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'theme' section in your .savebutton.yaml.")
	}

	if err := validateLabel(cfg.Label); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'label' section in your .savebutton.yaml.")
	}

	return nil
}

func validateTheme(t ThemeConfig) error {
	colors := []struct {
		key   string
		value string
	}{
		{"light", t.Light},
		{"dark", t.Dark},
		{"badge_mark", t.BadgeMark},
	}
	for _, c := range colors {
		if _, err := anim.ParseHex(c.value); err != nil {
			return fmt.Errorf("theme.%s %q is not a #RRGGBB color", c.key, c.value)
		}
	}
	if strings.EqualFold(t.Light, t.Dark) {
		return fmt.Errorf("theme.light and theme.dark are both %s, the label would be invisible", t.Light)
	}
	return nil
}

func validateLabel(l LabelConfig) error {
	if strings.TrimSpace(l.Root) == "" && l.Idle == "" {
		return fmt.Errorf("label.root and label.idle are both empty, the idle button would have no text")
	}
	if strings.ContainsAny(l.Root+l.Idle+l.Saving+l.Saved, "\n\r\t") {
		return fmt.Errorf("labels must be a single line")
	}
	return nil
}
