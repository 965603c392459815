// Package choreo turns save lifecycle transitions into animated visual
// parameters: label and color morphs, the busy spinner, and the
// spinner-to-checkmark sequence shown when a save completes.
//
// Level-triggered effects (colors, width, spin) follow whatever state is
// current. Edge-triggered effects (suffix swap, the saved sequence, the reset
// on leaving Saved) run once per transition.
package choreo

import (
	"time"

	"github.com/rileyhilliard/savebutton/internal/anim"
	"github.com/rileyhilliard/savebutton/internal/clock"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
	"github.com/rileyhilliard/savebutton/internal/logger"
)

// Option configures a Driver.
type Option func(*Driver)

// WithLabels overrides the label root and suffixes.
func WithLabels(l Labels) Option {
	return func(d *Driver) { d.labels = l }
}

// WithTheme overrides the colors.
func WithTheme(t Theme) Option {
	return func(d *Driver) { d.theme = t }
}

// WithReducedMotion starts the driver with reduced motion enabled.
func WithReducedMotion(enabled bool) Option {
	return func(d *Driver) { d.reduced = enabled }
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// Driver owns every animated parameter of the button.
type Driver struct {
	scheduler clock.Scheduler
	labels    Labels
	theme     Theme
	reduced   bool
	log       logger.Logger

	state   lifecycle.State
	elapsed time.Duration

	background anim.Color
	foreground anim.Color
	width      anim.Param
	suffix     suffixSlot

	badgeScale   anim.Param
	badgeOpacity anim.Param
	rotation     anim.Param
	dashOffset   anim.Param
	fill         anim.Param
	check        anim.Param

	sequence clock.Handle
	detach   []func()
	disposed bool
}

// New creates a driver resting in Idle. The scheduler runs the saved
// sequence delay; the host is responsible for calling Step.
func New(scheduler clock.Scheduler, opts ...Option) *Driver {
	d := &Driver{
		scheduler: scheduler,
		labels:    DefaultLabels(),
		theme:     DefaultTheme(),
		log:       logger.Noop(),
		state:     lifecycle.Idle,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.background = anim.NewColor(d.theme.Background(lifecycle.Idle))
	d.foreground = anim.NewColor(d.theme.Foreground(lifecycle.Idle))
	d.width = anim.NewParam(d.labels.Width(lifecycle.Idle))
	d.suffix = newSuffixSlot(d.labels.Suffix(lifecycle.Idle))
	d.resetIndicator()
	return d
}

// Attach wires a driver to a controller and a clock: transitions are
// observed and every clock advance steps the animations.
func Attach(clk *clock.Clock, c *lifecycle.Controller, opts ...Option) *Driver {
	d := New(clk, opts...)
	d.state = c.State()
	c.Subscribe(d.OnTransition)
	d.detach = append(d.detach, clk.OnAdvance(d.Step))
	return d
}

// State returns the last state the driver observed.
func (d *Driver) State() lifecycle.State {
	return d.state
}

// ReducedMotion reports whether reduced motion is on.
func (d *Driver) ReducedMotion() bool {
	return d.reduced
}

// SetReducedMotion toggles reduced motion. Turning it on completes every
// in-flight animation at its target immediately.
func (d *Driver) SetReducedMotion(enabled bool) {
	if d.reduced == enabled {
		return
	}
	d.reduced = enabled
	if !enabled {
		if d.state == lifecycle.Saving && !d.disposed {
			d.startSpin()
		}
		return
	}

	d.background.Set(d.background.Target())
	d.foreground.Set(d.foreground.Target())
	d.width.Set(d.width.Target())
	d.suffix.finish()
	d.badgeScale.Set(d.badgeScale.Target())
	d.badgeOpacity.Set(d.badgeOpacity.Target())
	d.rotation.Stop()
	d.dashOffset.Set(d.dashOffset.Target())
	if d.sequence != nil {
		d.cancelSequence()
		d.revealCheck()
	}
	d.fill.Set(d.fill.Target())
	d.check.Set(d.check.Target())
}

// OnTransition reacts to a lifecycle edge.
func (d *Driver) OnTransition(t lifecycle.Transition) {
	if d.disposed {
		return
	}
	d.state = t.To
	d.log.Debug("choreography %s", t)

	// Leaving Saved: put the indicator back to its spinning rest pose
	// before anything else animates it.
	if t.From == lifecycle.Saved {
		d.cancelSequence()
		d.resetIndicator()
	}
	if t.From == lifecycle.Saving {
		d.rotation.Stop()
	}

	d.morphContainer(t.To)

	switch {
	case t.To == lifecycle.Idle:
		d.springBadge(0)
	case t.From == lifecycle.Idle:
		d.springBadge(1)
	}

	switch t.To {
	case lifecycle.Saving:
		d.startSpin()
	case lifecycle.Saved:
		d.startSavedSequence()
	}
}

// Step advances every animation by dt.
func (d *Driver) Step(dt time.Duration) {
	if d.disposed || dt <= 0 {
		return
	}
	d.elapsed += dt
	d.background.Step(dt)
	d.foreground.Step(dt)
	d.width.Step(dt)
	d.suffix.step(dt, d.duration(SuffixDuration))
	d.badgeScale.Step(dt)
	d.badgeOpacity.Step(dt)
	d.rotation.Step(dt)
	d.dashOffset.Step(dt)
	d.fill.Step(dt)
	d.check.Step(dt)
}

// Settled reports whether nothing is animating or scheduled.
func (d *Driver) Settled() bool {
	return !d.background.Active() &&
		!d.foreground.Active() &&
		!d.width.Active() &&
		!d.suffix.active() &&
		!d.badgeScale.Active() &&
		!d.badgeOpacity.Active() &&
		!d.rotation.Active() &&
		!d.dashOffset.Active() &&
		!d.fill.Active() &&
		!d.check.Active() &&
		d.sequence == nil
}

// SequencePending reports whether the fill/check step is still scheduled.
func (d *Driver) SequencePending() bool {
	return d.sequence != nil
}

// Dispose cancels the scheduled sequence step, stops every animation and
// detaches from the clock.
func (d *Driver) Dispose() {
	if d.disposed {
		return
	}
	d.cancelSequence()
	d.background.Stop()
	d.foreground.Stop()
	d.width.Stop()
	d.suffix.opacity.Stop()
	d.suffix.offset.Stop()
	d.badgeScale.Stop()
	d.badgeOpacity.Stop()
	d.rotation.Stop()
	d.dashOffset.Stop()
	d.fill.Stop()
	d.check.Stop()
	for _, fn := range d.detach {
		fn()
	}
	d.detach = nil
	d.disposed = true
}

func (d *Driver) duration(full time.Duration) time.Duration {
	if d.reduced {
		return 0
	}
	return full
}

func (d *Driver) morphContainer(s lifecycle.State) {
	dur := d.duration(MorphDuration)
	d.background.AnimateTo(d.theme.Background(s), dur, anim.EaseInOut)
	d.foreground.AnimateTo(d.theme.Foreground(s), dur, anim.EaseInOut)
	d.width.AnimateTo(d.labels.Width(s), dur, anim.EaseInOut)
	d.suffix.change(d.labels.Suffix(s), d.duration(SuffixDuration))
}

func (d *Driver) springBadge(target float64) {
	if d.reduced {
		d.badgeScale.Set(target)
		d.badgeOpacity.Set(target)
		return
	}
	d.badgeScale.SpringTo(target, BadgeStiffness, BadgeDamping)
	d.badgeOpacity.SpringTo(target, BadgeStiffness, BadgeDamping)
}

func (d *Driver) startSpin() {
	if d.reduced {
		return
	}
	d.rotation.Spin(360/SpinPeriod.Seconds(), 360)
}

// startSavedSequence closes the arc now and, SequenceDelay after entry,
// fills the disc and draws the check together.
func (d *Driver) startSavedSequence() {
	d.cancelSequence()
	d.dashOffset.AnimateTo(0, d.duration(ArcCloseDuration), anim.EaseInOut)

	if d.reduced {
		d.revealCheck()
		return
	}

	var handle clock.Handle
	handle = d.scheduler.AfterFunc(SequenceDelay, func() {
		if d.disposed || d.sequence != handle {
			return
		}
		d.sequence = nil
		if d.state == lifecycle.Saved {
			d.revealCheck()
		}
	})
	d.sequence = handle
}

func (d *Driver) revealCheck() {
	d.fill.AnimateTo(1, d.duration(FillDuration), anim.EaseOut)
	d.check.AnimateTo(1, d.duration(CheckDuration), anim.EaseOut)
}

func (d *Driver) cancelSequence() {
	if d.sequence == nil {
		return
	}
	d.sequence.Stop()
	d.sequence = nil
}

// resetIndicator snaps the badge contents to the spinning rest pose.
func (d *Driver) resetIndicator() {
	d.rotation.Set(0)
	d.dashOffset.Set(RestingDashOffset)
	d.fill.Set(0)
	d.check.Set(0)
}
