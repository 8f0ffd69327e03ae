// SPDX-License-Identifier: GPL-3.0-or-later

package svcclient

import (
	"context"
	"log/slog"
)

// LogLevel names the severity of a [LogSink] record. The
// InnerLogger/OuterLogger plugins let callers pick a level per event
// (e.g. a lower level for on_parse_exception than for a hard transport
// failure).
type LogLevel int

// Log levels, lowest to highest severity.
const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the level's canonical name.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogSink is the structured request/response logging contract used by the
// InnerLogger, OuterLogger, and BaseLogger plugins (see the plugins
// subpackage). It is distinct from [SLogger], which logs pipeline
// lifecycle internals rather than application-facing request records.
type LogSink interface {
	Log(ctx context.Context, level LogLevel, msg string, fields map[string]any)
}

// LogSinkFunc adapts a function to a [LogSink].
type LogSinkFunc func(ctx context.Context, level LogLevel, msg string, fields map[string]any)

var _ LogSink = LogSinkFunc(nil)

// Log implements [LogSink].
func (f LogSinkFunc) Log(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	f(ctx, level, msg, fields)
}

// DiscardLogSink returns a [LogSink] that discards every record.
func DiscardLogSink() LogSink {
	return LogSinkFunc(func(context.Context, LogLevel, string, map[string]any) {})
}

// SlogSink returns a [LogSink] forwarding every record to logger, with
// [LogLevel] mapped onto the matching [slog.Level] and each field
// emitted as an attribute.
func SlogSink(logger *slog.Logger) LogSink {
	return LogSinkFunc(func(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
		attrs := make([]any, 0, len(fields)*2)
		for k, v := range fields {
			attrs = append(attrs, k, v)
		}
		logger.Log(ctx, slogLevel(level), msg, attrs...)
	})
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
