// Package clock provides the single timer facility the save button runs on.
//
// Time is virtual: nothing happens until the host calls Advance. The TUI
// advances the clock by the real elapsed time on every frame tick, the trace
// command and the tests advance it by exact amounts. Everything (timer
// callbacks and animation steps) therefore runs on the caller's goroutine,
// one event at a time.
package clock

import (
	"sort"
	"time"
)

// Handle is a scheduled callback that can be canceled before it fires.
type Handle interface {
	// Stop cancels the callback. It returns false if the callback already
	// fired or was already stopped.
	Stop() bool
}

// Scheduler schedules a callback after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Timer is a pending callback on a Clock.
type Timer struct {
	clock *Clock
	seq   uint64
	due   time.Duration
	fn    func()
}

// Stop cancels the timer.
func (t *Timer) Stop() bool {
	if t.clock == nil {
		return false
	}
	removed := t.clock.remove(t)
	t.clock = nil
	return removed
}

// Due returns the virtual time at which the timer fires.
func (t *Timer) Due() time.Duration {
	return t.due
}

type ticker struct {
	fn      func(dt time.Duration)
	removed bool
}

// Clock is a virtual clock with cancellable timers and advance listeners.
// It is not safe for concurrent use.
type Clock struct {
	now       time.Duration
	seq       uint64
	timers    []*Timer
	tickers   []*ticker
	advancing bool
}

// New returns a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// AfterFunc schedules fn to run once d has elapsed. Negative delays are
// treated as zero; a zero-delay timer fires on the next Advance, including
// the one currently running if called from a callback.
func (c *Clock) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &Timer{clock: c, seq: c.seq, due: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// OnAdvance registers fn to be called with each slice of elapsed time.
// Slices end exactly at timer due times, so work started by a timer
// callback only sees the time after the callback ran. The returned func
// unregisters fn.
func (c *Clock) OnAdvance(fn func(dt time.Duration)) (remove func()) {
	tk := &ticker{fn: fn}
	c.tickers = append(c.tickers, tk)
	return func() {
		tk.removed = true
		for i, other := range c.tickers {
			if other == tk {
				c.tickers = append(c.tickers[:i], c.tickers[i+1:]...)
				return
			}
		}
	}
}

// Advance moves the clock forward by d, firing due timers in order.
// Ties fire in scheduling order. Calls made from inside a callback or
// listener are ignored.
func (c *Clock) Advance(d time.Duration) {
	if c.advancing {
		return
	}
	if d < 0 {
		d = 0
	}
	c.advancing = true
	defer func() { c.advancing = false }()

	target := c.now + d
	for {
		next := c.next(target)
		if next == nil {
			c.step(target - c.now)
			c.now = target
			return
		}
		if next.due > c.now {
			c.step(next.due - c.now)
			c.now = next.due
		}
		c.remove(next)
		next.clock = nil
		next.fn()
	}
}

// next returns the earliest live timer due at or before limit.
func (c *Clock) next(limit time.Duration) *Timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due != c.timers[j].due {
			return c.timers[i].due < c.timers[j].due
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	if c.timers[0].due > limit {
		return nil
	}
	return c.timers[0]
}

func (c *Clock) step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	// Listeners may unregister themselves while stepping.
	snapshot := append([]*ticker(nil), c.tickers...)
	for _, tk := range snapshot {
		if !tk.removed {
			tk.fn(dt)
		}
	}
}

func (c *Clock) remove(t *Timer) bool {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}
