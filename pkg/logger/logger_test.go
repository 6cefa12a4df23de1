package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", false)

	log.Debug("verbose detail", "uid", "abc")
	log.Info("session created", "uid", "abc")

	out := buf.String()
	assert.NotContains(t, out, "verbose detail")
	assert.Contains(t, out, "session created")
	assert.Contains(t, out, "uid=abc")
}

func TestWithAddsContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", true).With("component", "accessor")

	log.Warn("cache unavailable")

	assert.Contains(t, buf.String(), `"component":"accessor"`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNopIsSilent(t *testing.T) {
	log := Nop().With("k", "v")
	log.Error("ignored")
	assert.NotNil(t, Slog(log))
}
