package catsim

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/catsim/aggregate"
)

// Logger wraps slog.Logger with catsim-specific context.
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

// WithRunID tags every record with the pipeline run id.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithLevels adds the configured number of hierarchy levels.
func (l *Logger) WithLevels(levels int) *Logger {
	return &Logger{
		Logger: l.Logger.With("levels", levels),
	}
}

// LogLoad logs the loading of one level table.
func (l *Logger) LogLoad(ctx context.Context, level int, path string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"level", level,
			"path", path,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "table loaded",
			"level", level,
			"path", path,
			"rows", rows,
		)
	}
}

// LogLevel logs one aggregated level.
func (l *Logger) LogLevel(ctx context.Context, stats aggregate.LevelStats, weight, limit uint32, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "level failed",
			"level", stats.Level,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "level aggregated",
			"level", stats.Level,
			"categories", stats.Categories,
			"members", stats.Members,
			"pairs", stats.Pairs,
			"work", stats.Work,
			"weight", weight,
			"cap", limit,
			"duration", d,
		)
	}
}

// LogNormalize logs the Jaccard normalization.
func (l *Logger) LogNormalize(ctx context.Context, nnz int, d time.Duration) {
	l.DebugContext(ctx, "similarity normalized",
		"nnz", nnz,
		"duration", d,
	)
}

// LogRun logs the outcome of a pipeline run.
func (l *Logger) LogRun(ctx context.Context, items, excluded int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "similarity run failed",
			"duration", d,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "similarity run completed",
			"items", items,
			"excluded", excluded,
			"duration", d,
		)
	}
}

// LogSave logs a persisted result.
func (l *Logger) LogSave(ctx context.Context, prefix string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"prefix", prefix,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "result saved",
			"prefix", prefix,
		)
	}
}
