// Package logging provides the console diagnostics channel for the student
// workspace.
//
// It wraps log/slog with the levels the pipeline needs plus CRITICAL, which
// is reserved for failures to write the audit log. A lost audit entry is a
// different kind of problem from a failed stage, so it is reported on its
// own level and never through Error.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmgilman/studentfiles/errors"
)

// LogLevel represents the minimum level a Logger emits.
type LogLevel int

// Log levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// LevelCritical is the slog level used for audit log write failures.
const LevelCritical = slog.LevelError + 4

// LogConfig holds configuration for a Logger.
type LogConfig struct {
	// Level sets the minimum log level.
	Level LogLevel
	// Output receives formatted records. Defaults to os.Stderr.
	Output io.Writer
	// EnableCallerInfo includes file and line number in records.
	EnableCallerInfo bool
}

// DefaultLogConfig returns info-level logging to stderr.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, errors.Newf(errors.CodeInvalidConfig, "unknown log level %q", s)
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger provides structured logging. A nil *Logger discards everything.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a text logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       config.Level.slogLevel(),
		AddSource:   config.EnableCallerInfo,
		ReplaceAttr: renameCritical,
	})
	return &Logger{logger: slog.New(handler)}
}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

// renameCritical prints LevelCritical as "CRITICAL" instead of "ERROR+4".
func renameCritical(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}

func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Log(ctx, level, msg, args...)
}

// Debug logs debug-level messages.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// Info logs info-level messages.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs warning-level messages.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// Error logs error-level messages.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args...)
}

// Critical logs on the dedicated audit-failure level.
func (l *Logger) Critical(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelCritical, msg, args...)
}

// With returns a logger with additional fields.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithStage returns a logger tagged with the pipeline stage name.
func (l *Logger) WithStage(stage string) *Logger {
	return l.With("stage", stage)
}

// ErrorFields renders err as key/value pairs: its message, code,
// classification and any attached context.
func ErrorFields(err error) []any {
	if err == nil {
		return nil
	}

	fields := []any{
		"error", err.Error(),
		"code", string(errors.GetCode(err)),
		"classification", string(errors.GetClassification(err)),
	}

	var platformErr errors.PlatformError
	if errors.As(err, &platformErr) {
		for k, v := range platformErr.Context() {
			// CUE issue lists are long; the error text already carries them.
			if k == "issues" || k == "details" || k == "positions" {
				continue
			}
			fields = append(fields, k, fmt.Sprint(v))
		}
	}
	return fields
}
