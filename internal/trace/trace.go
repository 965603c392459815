// Package trace replays scripted input against the save button on a virtual
// clock and records the frames a renderer would have drawn.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rileyhilliard/savebutton/internal/choreo"
	"github.com/rileyhilliard/savebutton/internal/clock"
	"github.com/rileyhilliard/savebutton/internal/errors"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
	"github.com/rileyhilliard/savebutton/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultStep is the sampling interval.
const DefaultStep = 50 * time.Millisecond

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Options configures a run.
type Options struct {
	Events        []Event
	Delay         time.Duration
	ReducedMotion bool
	Labels        choreo.Labels
	Theme         choreo.Theme
	Step          time.Duration
	Duration      time.Duration // 0 means last event + delay + 1s
	ChangesOnly   bool
	Logger        logger.Logger
}

// Transition is a lifecycle edge with the time it happened.
type Transition struct {
	At      time.Duration   `yaml:"at" json:"at"`
	From    lifecycle.State `yaml:"from" json:"from"`
	To      lifecycle.State `yaml:"to" json:"to"`
	Trigger string          `yaml:"trigger" json:"trigger"`
}

// Result is everything a run produced.
type Result struct {
	Delay         time.Duration  `yaml:"delay" json:"delay"`
	ReducedMotion bool           `yaml:"reduced_motion" json:"reduced_motion"`
	Step          time.Duration  `yaml:"step" json:"step"`
	Duration      time.Duration  `yaml:"duration" json:"duration"`
	Transitions   []Transition   `yaml:"transitions" json:"transitions"`
	Frames        []choreo.Frame `yaml:"frames" json:"frames"`
}

// Run replays opts.Events and samples a frame every opts.Step.
func Run(opts Options) (*Result, error) {
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	if opts.Delay <= 0 {
		opts.Delay = lifecycle.DefaultDelay
	}
	if opts.Labels == (choreo.Labels{}) {
		opts.Labels = choreo.DefaultLabels()
	}
	if opts.Theme == (choreo.Theme{}) {
		opts.Theme = choreo.DefaultTheme()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Duration <= 0 {
		opts.Duration = defaultDuration(opts.Events, opts.Delay)
	}
	if opts.Duration/opts.Step > maxFrames {
		return nil, errors.New(errors.ErrTrace,
			fmt.Sprintf("A %s run sampled every %s is more than %d frames", opts.Duration, opts.Step, maxFrames),
			"Use a larger --step or a shorter --duration")
	}

	clk := clock.New()
	ctrl := lifecycle.New(clk, lifecycle.WithDelay(opts.Delay), lifecycle.WithLogger(opts.Logger))
	drv := choreo.Attach(clk, ctrl,
		choreo.WithLabels(opts.Labels),
		choreo.WithTheme(opts.Theme),
		choreo.WithReducedMotion(opts.ReducedMotion),
		choreo.WithLogger(opts.Logger),
	)
	defer func() {
		drv.Dispose()
		ctrl.Dispose()
	}()

	res := &Result{
		Delay:         opts.Delay,
		ReducedMotion: opts.ReducedMotion,
		Step:          opts.Step,
		Duration:      opts.Duration,
	}
	ctrl.Subscribe(func(t lifecycle.Transition) {
		res.Transitions = append(res.Transitions, Transition{
			At:      clk.Now(),
			From:    t.From,
			To:      t.To,
			Trigger: t.Trigger.String(),
		})
	})

	for _, ev := range opts.Events {
		ev := ev
		clk.AfterFunc(ev.At, func() {
			opts.Logger.Debug("trace input %s at %s", ev.Input, clk.Now())
			switch ev.Input {
			case InputActivate:
				ctrl.HandleActivation()
			case InputDismiss:
				ctrl.HandleExternalDismiss()
			}
		})
	}

	var last *choreo.Frame
	sample := func() {
		f := roundFrame(drv.Frame())
		f.Time = clk.Now()
		if opts.ChangesOnly && last != nil && sameVisuals(*last, f) {
			return
		}
		res.Frames = append(res.Frames, f)
		last = &res.Frames[len(res.Frames)-1]
	}

	// Fire anything scheduled at zero before the first sample.
	clk.Advance(0)
	sample()
	for clk.Now() < opts.Duration {
		step := opts.Step
		if remaining := opts.Duration - clk.Now(); remaining < step {
			step = remaining
		}
		clk.Advance(step)
		sample()
	}

	return res, nil
}

// maxFrames bounds the size of a run.
const maxFrames = 100000

func defaultDuration(events []Event, delay time.Duration) time.Duration {
	var last time.Duration
	for _, ev := range events {
		if ev.At > last {
			last = ev.At
		}
	}
	return last + delay + time.Second
}

// Encode writes r in the given format.
func Encode(w io.Writer, r *Result, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return errors.WrapWithCode(err, errors.ErrTrace, "Failed to write YAML", "")
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return errors.WrapWithCode(err, errors.ErrTrace, "Failed to write JSON", "")
		}
		return nil
	default:
		return errors.New(errors.ErrTrace,
			fmt.Sprintf("Unknown format '%s'", format),
			"Use --format yaml or --format json")
	}
}

// sameVisuals compares everything but the timestamp.
func sameVisuals(a, b choreo.Frame) bool {
	a.Time = 0
	b.Time = 0
	return a == b
}

func roundFrame(f choreo.Frame) choreo.Frame {
	f.SuffixOpacity = round(f.SuffixOpacity)
	f.SuffixOffset = round(f.SuffixOffset)
	f.Width = round(f.Width)
	f.BadgeScale = round(f.BadgeScale)
	f.BadgeOpacity = round(f.BadgeOpacity)
	f.Rotation = round(f.Rotation)
	f.DashOffset = round(f.DashOffset)
	f.FillOpacity = round(f.FillOpacity)
	f.CheckProgress = round(f.CheckProgress)
	f.TrackOpacity = round(f.TrackOpacity)
	f.ArcOpacity = round(f.ArcOpacity)
	return f
}

func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
