// Package lifecycle owns the save button's Idle → Saving → Saved → Idle
// state machine and its single delayed transition.
package lifecycle

import (
	"time"

	"github.com/rileyhilliard/savebutton/internal/clock"
	"github.com/rileyhilliard/savebutton/internal/logger"
)

// DefaultDelay is how long Saving lasts before Saved is entered.
const DefaultDelay = 3 * time.Second

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the Saving → Saved delay. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger used for transitions and ignored input.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller interprets activation and dismiss input and drives the state.
// It is single-threaded: all methods and timer callbacks must run on the
// goroutine that advances the scheduler.
type Controller struct {
	state     State
	pending   clock.Handle
	scheduler clock.Scheduler
	delay     time.Duration
	observers []func(Transition)
	log       logger.Logger
	disposed  bool
}

// New creates a controller in the Idle state.
func New(scheduler clock.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		state:     Idle,
		scheduler: scheduler,
		delay:     DefaultDelay,
		log:       logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsBusy reports whether the control is saving and should refuse input.
func (c *Controller) IsBusy() bool {
	return c.state == Saving
}

// Delay returns the configured Saving → Saved delay.
func (c *Controller) Delay() time.Duration {
	return c.delay
}

// PendingTimers returns how many lifecycle timers are armed (0 or 1).
func (c *Controller) PendingTimers() int {
	if c.pending == nil {
		return 0
	}
	return 1
}

// Disposed reports whether Dispose has been called.
func (c *Controller) Disposed() bool {
	return c.disposed
}

// Subscribe registers fn to observe every transition, in order.
func (c *Controller) Subscribe(fn func(Transition)) {
	c.observers = append(c.observers, fn)
}

// HandleActivation processes a click or keyboard activation.
//
//	Idle   → Saving, arming the save timer
//	Saving → ignored
//	Saved  → Idle
func (c *Controller) HandleActivation() {
	if c.disposed {
		return
	}

	switch c.state {
	case Saving:
		c.log.Debug("activation ignored while saving")
	case Saved:
		c.cancelTimer()
		c.transition(Idle, TriggerActivation)
	case Idle:
		c.armTimer()
		c.transition(Saving, TriggerActivation)
	}
}

// HandleExternalDismiss processes input outside the control. Only Saved
// reacts, returning to Idle.
func (c *Controller) HandleExternalDismiss() {
	if c.disposed {
		return
	}
	if c.state != Saved {
		c.log.Debug("dismiss ignored in %s", c.state)
		return
	}
	c.cancelTimer()
	c.transition(Idle, TriggerDismiss)
}

// Dispose cancels the pending timer and detaches observers. Further input
// is ignored. Calling Dispose more than once is harmless.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.cancelTimer()
	c.observers = nil
	c.disposed = true
	c.log.Debug("disposed in %s", c.state)
}

// armTimer replaces any pending timer with a fresh one. The old timer is
// stopped before the new one exists, so two can never be live at once.
func (c *Controller) armTimer() {
	c.cancelTimer()

	var handle clock.Handle
	handle = c.scheduler.AfterFunc(c.delay, func() {
		// A superseded timer that somehow still fires must not transition.
		if c.disposed || c.pending != handle {
			return
		}
		c.pending = nil
		if c.state == Saving {
			c.transition(Saved, TriggerTimer)
		}
	})
	c.pending = handle
}

func (c *Controller) cancelTimer() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
}

func (c *Controller) transition(to State, trigger Trigger) {
	t := Transition{From: c.state, To: to, Trigger: trigger}
	c.state = to
	c.log.Debug("%s", t)
	for _, fn := range c.observers {
		fn(t)
	}
}
