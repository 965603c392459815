package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFunc_FiresAtDueTime(t *testing.T) {
	c := New()
	fired := false
	c.AfterFunc(100*time.Millisecond, func() { fired = true })

	c.Advance(99 * time.Millisecond)
	assert.False(t, fired)
	assert.Equal(t, 1, c.Pending())

	c.Advance(time.Millisecond)
	assert.True(t, fired)
	assert.Equal(t, 0, c.Pending())
	assert.Equal(t, 100*time.Millisecond, c.Now())
}

func TestStop_PreventsFiring(t *testing.T) {
	c := New()
	fired := false
	h := c.AfterFunc(50*time.Millisecond, func() { fired = true })

	assert.True(t, h.Stop())
	assert.False(t, h.Stop(), "second stop reports nothing pending")
	c.Advance(time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, c.Pending())
}

func TestStop_AfterFire(t *testing.T) {
	c := New()
	h := c.AfterFunc(0, func() {})
	c.Advance(0)
	assert.False(t, h.Stop())
}

func TestAdvance_OrdersTimers(t *testing.T) {
	c := New()
	var order []string
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAdvance_TimerScheduledFromCallback(t *testing.T) {
	c := New()
	var at []time.Duration
	c.AfterFunc(10*time.Millisecond, func() {
		at = append(at, c.Now())
		c.AfterFunc(5*time.Millisecond, func() { at = append(at, c.Now()) })
	})

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, at)
}

func TestOnAdvance_SegmentsAtTimerBoundaries(t *testing.T) {
	c := New()
	var slices []time.Duration
	c.OnAdvance(func(dt time.Duration) { slices = append(slices, dt) })
	c.AfterFunc(30*time.Millisecond, func() {})

	c.Advance(100 * time.Millisecond)
	assert.Equal(t, []time.Duration{30 * time.Millisecond, 70 * time.Millisecond}, slices)
}

func TestOnAdvance_Remove(t *testing.T) {
	c := New()
	calls := 0
	remove := c.OnAdvance(func(time.Duration) { calls++ })

	c.Advance(time.Millisecond)
	remove()
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
}

func TestAdvance_NegativeIsZero(t *testing.T) {
	c := New()
	fired := false
	c.AfterFunc(-time.Second, func() { fired = true })
	c.Advance(-time.Second)
	assert.True(t, fired)
	assert.Equal(t, time.Duration(0), c.Now())
}

func TestAdvance_NestedCallIgnored(t *testing.T) {
	c := New()
	c.AfterFunc(10*time.Millisecond, func() { c.Advance(time.Hour) })
	c.Advance(20 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, c.Now())
}

func TestTimer_Due(t *testing.T) {
	c := New()
	c.Advance(5 * time.Millisecond)
	h := c.AfterFunc(10*time.Millisecond, func() {})
	timer, ok := h.(*Timer)
	require.True(t, ok)
	assert.Equal(t, 15*time.Millisecond, timer.Due())
}
