package trace

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rileyhilliard/savebutton/internal/choreo"
	"github.com/rileyhilliard/savebutton/internal/errors"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func frameAt(t *testing.T, r *Result, at time.Duration) choreo.Frame {
	t.Helper()
	for _, f := range r.Frames {
		if f.Time == at {
			return f
		}
	}
	t.Fatalf("no frame at %s", at)
	return choreo.Frame{}
}

func TestRun_FullCycle(t *testing.T) {
	events, err := ParseEvents("activate@0,dismiss@2.5s")
	require.NoError(t, err)

	r, err := Run(Options{Events: events, Delay: 1400 * time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, 4900*time.Millisecond, r.Duration)
	require.Len(t, r.Transitions, 3)
	assert.Equal(t, Transition{At: 0, From: lifecycle.Idle, To: lifecycle.Saving, Trigger: "activation"}, r.Transitions[0])
	assert.Equal(t, Transition{At: 1400 * time.Millisecond, From: lifecycle.Saving, To: lifecycle.Saved, Trigger: "timer"}, r.Transitions[1])
	assert.Equal(t, Transition{At: 2500 * time.Millisecond, From: lifecycle.Saved, To: lifecycle.Idle, Trigger: "dismiss"}, r.Transitions[2])

	assert.Len(t, r.Frames, 99)
	assert.True(t, frameAt(t, r, 0).Busy)
	assert.Equal(t, lifecycle.Saved, frameAt(t, r, 1650*time.Millisecond).State)

	saved := frameAt(t, r, 2000*time.Millisecond)
	assert.Equal(t, 1.0, saved.FillOpacity)
	assert.Equal(t, 1.0, saved.CheckProgress)

	end := frameAt(t, r, r.Duration)
	assert.Equal(t, lifecycle.Idle, end.State)
	assert.Equal(t, "Save", end.Label)
	assert.Equal(t, 0.0, end.FillOpacity)
	assert.Equal(t, round(choreo.RestingDashOffset), end.DashOffset)
}

func TestRun_SavedSequenceTiming(t *testing.T) {
	r, err := Run(Options{
		Events: []Event{{At: 0, Input: InputActivate}},
		Delay:  time.Second,
		Step:   10 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, frameAt(t, r, 1270*time.Millisecond).FillOpacity)
	assert.Greater(t, frameAt(t, r, 1290*time.Millisecond).FillOpacity, 0.0)
	assert.Greater(t, frameAt(t, r, 1290*time.Millisecond).CheckProgress, 0.0)
}

func TestRun_ChangesOnly(t *testing.T) {
	r, err := Run(Options{Duration: time.Second, ChangesOnly: true})
	require.NoError(t, err)
	assert.Len(t, r.Frames, 1, "an idle button never changes")
}

func TestRun_ReducedMotion(t *testing.T) {
	r, err := Run(Options{
		Events:        []Event{{At: 0, Input: InputActivate}},
		Delay:         500 * time.Millisecond,
		ReducedMotion: true,
	})
	require.NoError(t, err)

	f := frameAt(t, r, 0)
	assert.Equal(t, "#1f1f1f", f.Background)
	assert.Equal(t, 0.0, f.Rotation)

	f = frameAt(t, r, 500*time.Millisecond)
	assert.Equal(t, 1.0, f.CheckProgress)
	assert.True(t, r.ReducedMotion)
}

func TestRun_TooManyFrames(t *testing.T) {
	_, err := Run(Options{Duration: time.Hour, Step: time.Millisecond})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTrace))
}

func TestEncode(t *testing.T) {
	r, err := Run(Options{Duration: 100 * time.Millisecond})
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, r, FormatYAML))
		out := buf.String()
		assert.Contains(t, out, "delay: 3s")
		assert.Contains(t, out, "state: idle")
		assert.Contains(t, out, "label: Save")

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Len(t, decoded["frames"], 3)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, r, FormatJSON))

		var decoded struct {
			Frames []map[string]interface{} `json:"frames"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded.Frames, 3)
		assert.Equal(t, "idle", decoded.Frames[0]["state"])
	})

	t.Run("unknown", func(t *testing.T) {
		err := Encode(&bytes.Buffer{}, r, "xml")
		assert.True(t, errors.IsCode(err, errors.ErrTrace))
	})
}
