package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLoggerWithWriter(cfg, &buf)
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestJSONLogging_BaseAttributes(t *testing.T) {
	buf := captureJSON(t, NewConfig("info", FormatJSON, "", "1.2.0", "test", false))

	Info("rolled", "item", "golden haka", "denominator", 10_000)

	entry := decodeLine(t, buf)
	assert.Equal(t, ServiceName, entry[AttrService])
	assert.Equal(t, "1.2.0", entry[AttrVersion])
	assert.Equal(t, "test", entry[AttrEnvironment])
	assert.Equal(t, "rolled", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "golden haka", entry["item"])
	assert.EqualValues(t, 10_000, entry["denominator"])
}

func TestJSONLogging_OmitsEmptyVersion(t *testing.T) {
	buf := captureJSON(t, Config{Level: "info", Format: FormatJSON, ServiceName: "svc"})
	Info("hello")

	entry := decodeLine(t, buf)
	assert.NotContains(t, entry, AttrVersion)
	assert.NotContains(t, entry, AttrEnvironment)
}

func TestFromContext(t *testing.T) {
	buf := captureJSON(t, NewConfig("debug", FormatJSON, "", "", "", false))

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "42")
	FromContext(ctx).Info("craft")

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-1", entry[ContextKeyRequestID])
	assert.Equal(t, "42", entry[ContextKeyUserID])
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Same(t, slog.Default(), FromContext(ctx))

	assert.Equal(t, ctx, WithUserID(ctx, ""))
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	InitLoggerWithWriter(NewConfig("warn", FormatText, "", "", "", false), &buf)

	Info("hidden")
	Debug("hidden too")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfig_LogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, Config{Level: tt.level}.LogLevel())
		})
	}
}

func TestConfig_IsJSON(t *testing.T) {
	assert.True(t, Config{Format: "JSON"}.IsJSON())
	assert.False(t, Config{Format: FormatText}.IsJSON())
	assert.False(t, Config{}.IsJSON())
}
