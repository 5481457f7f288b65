package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestNew_JSON(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", slog.String("word", "apple"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "apple", entry["word"])
	assert.Contains(t, entry, "source")
}

func TestNew_TextAndTint(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var text bytes.Buffer
	New(&text, "info", "text").Info("hello")
	assert.Contains(t, text.String(), "msg=hello")

	var colored bytes.Buffer
	New(&colored, "info", "tint").Info("hello")
	assert.Contains(t, colored.String(), "hello")
	assert.NotContains(t, colored.String(), "msg=")
}

func TestNew_UnknownLevelWarns(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	New(&buf, "chatty", "text")
	assert.Contains(t, buf.String(), "Unknown log level")
}

func TestGetLogger(t *testing.T) {
	assert.Same(t, slog.Default(), GetLogger(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, GetLogger(ctx))
}
