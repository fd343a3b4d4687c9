// Package logger wraps slog with a level-adjustable default logger and a
// small typed-field surface so call sites stay free of slog plumbing.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Level mirrors the subset of slog levels the service uses.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value any
}

// String returns a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Float64 returns a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Duration returns a duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err returns an error field keyed "error". A nil error becomes "<nil>".
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger is a leveled structured logger.
type Logger struct {
	sl    *slog.Logger
	level *slog.LevelVar
}

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Init configures the process-wide logger at the given level. Subsequent
// calls only adjust the level.
func Init(level string) {
	defaultOnce.Do(func() {
		defaultLogger = New(level)
	})
	defaultLogger.SetLevelString(level)
}

// Get returns the process-wide logger, initializing it at info level if
// Init has not been called.
func Get() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// New builds a logger writing JSON records to stderr.
func New(level string) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(parseLevel(level))
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lv})
	return &Logger{sl: slog.New(handler), level: lv}
}

// SetLevelString adjusts the minimum level. Unknown strings fall back to info.
func (l *Logger) SetLevelString(level string) {
	l.level.Set(parseLevel(level))
}

// Named returns a logger that prefixes attribute keys with the given group.
func (l *Logger) Named(name string) *Logger {
	return &Logger{sl: l.sl.WithGroup(name), level: l.level}
}

// With returns a logger carrying the given fields on every record.
func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{sl: l.sl.With(attrs(fields)...), level: l.level}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...Field) {
	l.sl.LogAttrs(context.Background(), slog.LevelDebug, msg, slogAttrs(fields)...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...Field) {
	l.sl.LogAttrs(context.Background(), slog.LevelInfo, msg, slogAttrs(fields)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.sl.LogAttrs(context.Background(), slog.LevelWarn, msg, slogAttrs(fields)...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...Field) {
	l.sl.LogAttrs(context.Background(), slog.LevelError, msg, slogAttrs(fields)...)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func slogAttrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}
