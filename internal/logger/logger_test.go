package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Level: "warn", Writer: &buf})
	log.Info("hidden")
	log.Warn("shown", "county", "alachua")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "county=alachua")

	assert.False(t, log.Enabled(slog.LevelInfo))

	child := log.With("run_id", "abc")
	log.SetLevel("debug")
	assert.True(t, child.Enabled(slog.LevelDebug))

	child.Debug("from child")
	assert.Contains(t, buf.String(), "run_id=abc")
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
	})

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "wrote entities", 0)
	record.AddAttrs(slog.Int("count", 3), slog.Any("err", errors.New("boom")))

	require.NoError(t, handler.Handle(context.Background(), record))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "wrote entities")
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, `"err":"boom"`)
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer

	log := New(Options{Level: "info", Pretty: true, Writer: &buf}).With("county", "lee")
	log.Error("failed")
	log.Debug("ignored")

	out := buf.String()
	assert.Contains(t, out, "ERROR:")
	assert.Contains(t, out, `"county":"lee"`)
	assert.NotContains(t, out, "ignored")
}

func TestPrettyHandler_EmptyAttrs(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})
	record := slog.NewRecord(time.Now(), slog.LevelWarn, "no attrs", 0)

	require.NoError(t, handler.Handle(context.Background(), record))
	assert.Contains(t, buf.String(), "WARN:")
	assert.Contains(t, buf.String(), "{}")
}
