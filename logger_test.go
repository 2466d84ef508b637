package cohort

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/hupe1980/cohort/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf).WithRunID("run-1").WithK(3).WithDimension(8).WithCount(100)
	l.Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, 3.0, lines[0]["k"])
	assert.Equal(t, 8.0, lines[0]["dimension"])
	assert.Equal(t, 100.0, lines[0]["count"])
}

func TestLoggerOperations(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name    string
		log     func(l *Logger)
		level   string
		message string
	}{
		{"segment ok", func(l *Logger) { l.LogSegment(ctx, 5, true, nil) }, "DEBUG", "segment completed"},
		{"segment failed", func(l *Logger) { l.LogSegment(ctx, 0, false, boom) }, "ERROR", "segment failed"},
		{"graph ok", func(l *Logger) { l.LogGraphBuild(ctx, 10, 4, nil) }, "DEBUG", "graph build completed"},
		{"graph failed", func(l *Logger) { l.LogGraphBuild(ctx, 10, 0, boom) }, "ERROR", "graph build failed"},
		{"decomposition ok", func(l *Logger) { l.LogDecomposition(ctx, 2, 1, graph.Stats{Passes: 2}, nil) }, "DEBUG", "decomposition completed"},
		{"decomposition failed", func(l *Logger) { l.LogDecomposition(ctx, -1, 0, graph.Stats{}, boom) }, "ERROR", "decomposition failed"},
		{"load ok", func(l *Logger) { l.LogLoad(ctx, "a.csv", 3, nil) }, "INFO", "dataset loaded"},
		{"load failed", func(l *Logger) { l.LogLoad(ctx, "a.csv", 0, boom) }, "ERROR", "dataset load failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(jsonLogger(&buf))

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.level, lines[0]["level"])
			assert.Equal(t, tt.message, lines[0]["msg"])
		})
	}
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
