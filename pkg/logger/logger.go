package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const (
	LevelCritical = slog.Level(12)
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

// Options carries the raw LOG_LEVEL, LOG_FORMAT and ENV values as loaded by
// config. Unknown or empty values fall back to info (debug in development)
// and json.
type Options struct {
	Env     string
	Level   string
	Format  string
	Service string
}

func (o Options) level() slog.Level {
	if level, ok := levels[normalizeValue(o.Level)]; ok {
		return level
	}
	if normalizeValue(o.Env) == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (o Options) format() string {
	if normalizeValue(o.Format) == "text" {
		return "text"
	}
	return "json"
}

var levels = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type slogLogger struct {
	base *slog.Logger
}

// NewWithOptions writes to output and tags every record with opts.Service
// when it is set.
func NewWithOptions(output io.Writer, opts Options) Logger {
	log := New(output, opts.level(), opts.format())
	if service := strings.TrimSpace(opts.Service); service != "" {
		log = log.With("service", service)
	}
	return log
}

// Nop discards everything. Used by tests and by components built without a logger.
func Nop() Logger {
	return New(io.Discard, LevelCritical+1, "text")
}

func New(output io.Writer, level slog.Level, format string) Logger {
	options := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renderCritical,
	}

	var handler slog.Handler
	if normalizeValue(format) == "json" {
		handler = slog.NewJSONHandler(output, options)
	} else {
		handler = slog.NewTextHandler(output, options)
	}

	return &slogLogger{base: slog.New(handler)}
}

func (l *slogLogger) Debug(message string, args ...any) {
	l.base.Debug(message, args...)
}

func (l *slogLogger) Info(message string, args ...any) {
	l.base.Info(message, args...)
}

func (l *slogLogger) Warn(message string, args ...any) {
	l.base.Warn(message, args...)
}

func (l *slogLogger) Error(message string, args ...any) {
	l.base.Error(message, args...)
}

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError logs expected failures such as validation or a missing court
// at warn. A nil err logs nothing.
func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Warn(message, withErr(err, args)...)
}

// InternalError logs at error. A nil err logs nothing.
func (l *slogLogger) InternalError(message string, err error, args ...any) {
	if err == nil {
		return
	}
	l.base.Error(message, withErr(err, args)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func withErr(err error, args []any) []any {
	return append([]any{"err", err}, args...)
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func renderCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
			attr.Value = slog.StringValue("CRITICAL")
		}
	}
	return attr
}
