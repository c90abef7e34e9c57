package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.name))
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &TestLogBuffer{}
	l, err := SetupWithWriter(LoggerConfig{Level: "warn", Format: "json"}, buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("hidden")
	slog.Warn("visible through default", "key", "value")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1, "info should be filtered at warn level")
	assert.Equal(t, "visible through default", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
}

func TestSetupWithWriterTextFormat(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &TestLogBuffer{}
	l, err := SetupWithWriter(LoggerConfig{Level: "info", Format: "text"}, buf)
	require.NoError(t, err)

	l.Info("hello", "site", "webapp")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "site=webapp")
}

func TestFromContext(t *testing.T) {
	l, _ := NewTestLogger()
	ctx := WithLogger(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	def, _ := NewTestLogger()
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	assert.Same(t, l, FromContextOrDefault(ctx, def))
}
