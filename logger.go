package lshdedup

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lshdedup-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// defaultLogger reports warnings and errors only, so duplicate-id warnings
// stay visible while routine info events do not.
func defaultLogger() *Logger {
	return NewTextLogger(slog.LevelWarn)
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogDuplicateID logs re-registration of an existing document id.
// The write still happens; the warning exists so callers can spot id collisions.
func (l *Logger) LogDuplicateID(ctx context.Context, id string) {
	l.WarnContext(ctx, "duplicate id", "id", id)
}

// LogFilterStart logs the start of exact Jaccard re-scoring.
func (l *Logger) LogFilterStart(ctx context.Context, pairs int) {
	l.InfoContext(ctx, "computing jaccard similarity", "pairs", pairs)
}

// LogFilterDone logs the outcome of exact Jaccard re-scoring.
func (l *Logger) LogFilterDone(ctx context.Context, kept, total int, minJaccard float64) {
	l.InfoContext(ctx, "keeping candidate duplicate pairs",
		"kept", kept,
		"total", total,
		"min_jaccard", minJaccard,
	)
}

// LogBatch logs a batch registration.
func (l *Logger) LogBatch(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch update failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch update completed",
			"count", count,
		)
	}
}

// LogClear logs a bucket reset.
func (l *Logger) LogClear(ctx context.Context, fingerprints int) {
	l.InfoContext(ctx, "buckets cleared", "fingerprints_kept", fingerprints)
}

// LogSave logs a snapshot save.
func (l *Logger) LogSave(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"bytes", size,
		)
	}
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, name string, documents int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot loaded",
			"name", name,
			"documents", documents,
		)
	}
}
