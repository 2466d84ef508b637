package cohort

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/cohort/graph"
)

// Logger wraps slog.Logger with cohort-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRunID adds a run id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSegment logs a clustering run. The cluster count is expected as a
// field added with WithK.
func (l *Logger) LogSegment(ctx context.Context, iterations int, converged bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "segment failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "segment completed",
			"iterations", iterations,
			"converged", converged,
		)
	}
}

// LogGraphBuild logs construction of the similarity graph.
func (l *Logger) LogGraphBuild(ctx context.Context, nodes, edges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "graph build failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "graph build completed",
			"nodes", nodes,
			"edges", edges,
		)
	}
}

// LogDecomposition logs a k-core decomposition.
func (l *Logger) LogDecomposition(ctx context.Context, coreK, cores int, stats graph.Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decomposition failed",
			"core_k", coreK,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decomposition completed",
			"core_k", coreK,
			"cores", cores,
			"passes", stats.Passes,
			"peel_rounds", stats.PeelRounds,
			"peeled", stats.Peeled,
		)
	}
}

// LogLoad logs loading a dataset.
func (l *Logger) LogLoad(ctx context.Context, name string, entities int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset loaded",
			"name", name,
			"entities", entities,
		)
	}
}
