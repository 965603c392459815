package lifecycle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state  State
		expect string
	}{
		{Idle, "idle"},
		{Saving, "saving"},
		{Saved, "saved"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.state.String())
		})
	}
}

func TestState_TextEncoding(t *testing.T) {
	data, err := json.Marshal(map[string]State{"s": Saving})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"saving"}`, string(data))

	var s State
	require.NoError(t, s.UnmarshalText([]byte("saved")))
	assert.Equal(t, Saved, s)

	assert.Error(t, s.UnmarshalText([]byte("busy")))
	_, err = State(9).MarshalText()
	assert.Error(t, err)
}

func TestTrigger_String(t *testing.T) {
	assert.Equal(t, "activation", TriggerActivation.String())
	assert.Equal(t, "timer", TriggerTimer.String())
	assert.Equal(t, "dismiss", TriggerDismiss.String())
	assert.Equal(t, "unknown", Trigger(7).String())
}
