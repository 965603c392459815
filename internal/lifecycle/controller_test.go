package lifecycle

import (
	"testing"
	"time"

	"github.com/rileyhilliard/savebutton/internal/clock"
	"github.com/rileyhilliard/savebutton/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 1400 * time.Millisecond

func newTestController(t *testing.T) (*Controller, *clock.Clock) {
	t.Helper()
	clk := clock.New()
	return New(clk, WithDelay(testDelay)), clk
}

// toSaved drives a fresh controller into Saved.
func toSaved(t *testing.T, c *Controller, clk *clock.Clock) {
	t.Helper()
	c.HandleActivation()
	clk.Advance(c.Delay())
	require.Equal(t, Saved, c.State())
}

func TestNew_Defaults(t *testing.T) {
	c := New(clock.New())
	assert.Equal(t, Idle, c.State())
	assert.False(t, c.IsBusy())
	assert.Equal(t, DefaultDelay, c.Delay())
	assert.Equal(t, 0, c.PendingTimers())
}

func TestWithDelay_IgnoresNonPositive(t *testing.T) {
	c := New(clock.New(), WithDelay(0), WithDelay(-time.Second))
	assert.Equal(t, DefaultDelay, c.Delay())
}

// Scenario A
func TestActivation_IdleToSavingToSaved(t *testing.T) {
	c, clk := newTestController(t)

	c.HandleActivation()
	assert.Equal(t, Saving, c.State())
	assert.True(t, c.IsBusy())
	assert.Equal(t, 1, c.PendingTimers())
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(testDelay - time.Millisecond)
	assert.Equal(t, Saving, c.State())

	clk.Advance(time.Millisecond)
	assert.Equal(t, Saved, c.State())
	assert.False(t, c.IsBusy())
	assert.Equal(t, 0, c.PendingTimers())
	assert.Equal(t, 0, clk.Pending())
}

// Scenario B
func TestActivation_WhileSavingIsIgnored(t *testing.T) {
	c, clk := newTestController(t)
	c.HandleActivation()
	clk.Advance(500 * time.Millisecond)

	for i := 0; i < 5; i++ {
		c.HandleActivation()
	}
	assert.Equal(t, Saving, c.State())
	assert.Equal(t, 1, c.PendingTimers())
	assert.Equal(t, 1, clk.Pending(), "no second timer may be armed")

	// The original timer keeps its deadline.
	clk.Advance(testDelay - 500*time.Millisecond)
	assert.Equal(t, Saved, c.State())
}

// Scenario C
func TestActivation_SavedResetsToIdle(t *testing.T) {
	c, clk := newTestController(t)
	toSaved(t, c, clk)

	c.HandleActivation()
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, 0, c.PendingTimers())
	assert.Equal(t, 0, clk.Pending())
}

// Scenario D
func TestExternalDismiss(t *testing.T) {
	t.Run("saved returns to idle", func(t *testing.T) {
		c, clk := newTestController(t)
		toSaved(t, c, clk)

		c.HandleExternalDismiss()
		assert.Equal(t, Idle, c.State())
		assert.Equal(t, 0, c.PendingTimers())
	})

	t.Run("idle stays idle", func(t *testing.T) {
		c, _ := newTestController(t)
		c.HandleExternalDismiss()
		assert.Equal(t, Idle, c.State())
	})

	t.Run("saving keeps its timer", func(t *testing.T) {
		c, clk := newTestController(t)
		c.HandleActivation()
		c.HandleExternalDismiss()
		assert.Equal(t, Saving, c.State())
		assert.Equal(t, 1, c.PendingTimers())

		clk.Advance(testDelay)
		assert.Equal(t, Saved, c.State())
	})
}

func TestTimer_OnlyEverEntersSaved(t *testing.T) {
	c, clk := newTestController(t)
	var seen []Transition
	c.Subscribe(func(tr Transition) { seen = append(seen, tr) })

	c.HandleActivation()
	clk.Advance(testDelay)

	require.Len(t, seen, 2)
	assert.Equal(t, Transition{From: Saving, To: Saved, Trigger: TriggerTimer}, seen[1])
}

func TestFullCycle_Repeats(t *testing.T) {
	c, clk := newTestController(t)
	for i := 0; i < 3; i++ {
		toSaved(t, c, clk)
		c.HandleActivation()
		assert.Equal(t, Idle, c.State())
		assert.Equal(t, 0, clk.Pending())
	}
}

func TestDispose(t *testing.T) {
	states := []struct {
		name  string
		setup func(c *Controller, clk *clock.Clock)
	}{
		{"idle", func(c *Controller, clk *clock.Clock) {}},
		{"saving", func(c *Controller, clk *clock.Clock) { c.HandleActivation() }},
		{"saved", func(c *Controller, clk *clock.Clock) {
			c.HandleActivation()
			clk.Advance(c.Delay())
		}},
	}

	for _, tt := range states {
		t.Run(tt.name, func(t *testing.T) {
			c, clk := newTestController(t)
			tt.setup(c, clk)
			before := c.State()

			fired := 0
			c.Subscribe(func(Transition) { fired++ })
			c.Dispose()
			c.Dispose()

			assert.True(t, c.Disposed())
			assert.Equal(t, 0, c.PendingTimers())
			assert.Equal(t, 0, clk.Pending())

			clk.Advance(time.Hour)
			c.HandleActivation()
			c.HandleExternalDismiss()
			assert.Equal(t, before, c.State())
			assert.Zero(t, fired)
		})
	}
}

func TestSubscribe_ObservesEveryEdge(t *testing.T) {
	c, clk := newTestController(t)
	var seen []string
	c.Subscribe(func(tr Transition) { seen = append(seen, tr.String()) })

	c.HandleActivation()
	c.HandleActivation()
	clk.Advance(testDelay)
	c.HandleExternalDismiss()

	assert.Equal(t, []string{
		"idle -> saving (activation)",
		"saving -> saved (timer)",
		"saved -> idle (dismiss)",
	}, seen)
}

func TestLogging(t *testing.T) {
	buf := logger.NewBufferLogger()
	clk := clock.New()
	c := New(clk, WithLogger(buf), WithDelay(testDelay))

	c.HandleActivation()
	c.HandleActivation()

	assert.True(t, buf.Contains("idle -> saving"))
	assert.True(t, buf.Contains("activation ignored while saving"))
}

// staleScheduler never stops timers, so canceled callbacks still run. The
// controller must ignore them.
type staleScheduler struct {
	fns []func()
}

type staleHandle struct{ id int }

func (staleHandle) Stop() bool { return true }

func (s *staleScheduler) AfterFunc(_ time.Duration, fn func()) clock.Handle {
	s.fns = append(s.fns, fn)
	return &staleHandle{id: len(s.fns)}
}

func TestSupersededTimerCannotTransition(t *testing.T) {
	s := &staleScheduler{}
	c := New(s)

	c.HandleActivation() // arms timer 0
	s.fns[0]()           // Saved
	c.HandleActivation() // Idle
	c.HandleActivation() // Saving, arms timer 1
	require.Len(t, s.fns, 2)

	s.fns[0]() // stale: must not complete the new cycle
	assert.Equal(t, Saving, c.State())

	s.fns[1]()
	assert.Equal(t, Saved, c.State())
}
