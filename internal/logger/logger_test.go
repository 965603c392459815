package logger

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{"logs when SAVEBUTTON_DEBUG is set", "1", true},
		{"logs when SAVEBUTTON_DEBUG is any value", "true", true},
		{"does not log when SAVEBUTTON_DEBUG is empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log.SetOutput(&buf)
			defer log.SetOutput(os.Stderr)

			if tt.envValue != "" {
				t.Setenv(DebugEnv, tt.envValue)
			} else {
				t.Setenv(DebugEnv, "")
			}

			l := NewEnvLogger("[test]")
			l.Debug("state %s", "saving")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] state saving")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := NewEnvLogger("[x]")
	l.Info("hello")
	l.Warn("careful")
	l.Error("broken")

	out := buf.String()
	assert.Contains(t, out, "[x] hello")
	assert.Contains(t, out, "[x] WARN: careful")
	assert.Contains(t, out, "[x] ERROR: broken")
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("a")
		l.Info("b")
		l.Warn("c")
		l.Error("d")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Debug("transition %s -> %s", "idle", "saving")
	l.Warn("ignored")

	require.Len(t, l.Messages, 2)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "transition idle -> saving", l.Messages[0].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
	assert.True(t, l.Contains("idle -> saving"))
	assert.False(t, l.Contains("saved"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("via default")
	assert.True(t, buf.Contains("via default"))
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(DebugEnv, "")
	assert.False(t, DebugEnabled())
	t.Setenv(DebugEnv, "1")
	assert.True(t, DebugEnabled())
}
