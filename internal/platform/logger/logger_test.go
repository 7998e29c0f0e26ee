package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/abgdnv/inventory/internal/platform/contextkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToLevel(t *testing.T) {
	testCases := []struct {
		in       string
		expected slog.Level
	}{
		{in: "debug", expected: slog.LevelDebug},
		{in: "info", expected: slog.LevelInfo},
		{in: "warn", expected: slog.LevelWarn},
		{in: "error", expected: slog.LevelError},
		{in: "", expected: slog.LevelInfo},
		{in: "verbose", expected: slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, ToLevel(tc.in))
		})
	}
}

func Test_ContextHandler_AddsOperationID(t *testing.T) {
	// given
	var buf bytes.Buffer
	_, log := New(&buf, "info", "json")
	ctx := contextkeys.WithOperationID(context.Background(), "op-123")
	// when
	log.With("component", "test").InfoContext(ctx, "hello")
	// then
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "op-123", record["operation_id"])
	assert.Equal(t, "test", record["component"])
}

func Test_ContextHandler_WithoutOperationID(t *testing.T) {
	// given
	var buf bytes.Buffer
	_, log := New(&buf, "info", "text")
	// when
	log.InfoContext(context.Background(), "hello")
	// then
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "operation_id")
}

func Test_New_RespectsLevel(t *testing.T) {
	// given
	var buf bytes.Buffer
	level, log := New(&buf, "warn", "json")
	// when
	log.Info("hidden")
	log.Warn("shown")
	// then
	assert.Equal(t, slog.LevelWarn, level)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}
