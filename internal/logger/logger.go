package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger behind printf-style level methods so call
// sites stay short. Prefixes and fields are carried as zerolog context.
type Logger struct {
	zl zerolog.Logger
}

// Option configures a Logger.
type Option func(*options)

type options struct {
	out     io.Writer
	level   zerolog.Level
	console bool
}

// WithOutput sets the output destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level zerolog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithConsole enables human-readable console output instead of JSON.
func WithConsole(enabled bool) Option {
	return func(o *options) {
		o.console = enabled
	}
}

// ParseLevel parses a string into a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a new Logger with the given options.
func New(opts ...Option) *Logger {
	o := options{
		out:     os.Stdout,
		level:   zerolog.InfoLevel,
		console: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	out := o.out
	if o.console {
		out = zerolog.ConsoleWriter{Out: o.out, TimeFormat: "2006-01-02 15:04:05.000"}
	}
	zl := zerolog.New(out).Level(o.level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

var defaultLogger = New()

// SetDefault sets the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// WithPrefix returns a new logger tagged with a component prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", prefix).Logger()}
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	ctx := l.zl.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{zl: ctx.Logger()}
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.zl.Debug().Msgf(msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.zl.Info().Msgf(msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.zl.Warn().Msgf(msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.zl.Error().Msgf(msg, args...)
}

// Package-level functions that use the default logger.

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

// Context key for request-scoped logger.
type ctxKey struct{}

// FromContext returns the logger from the context, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// NewContext returns a new context with the given logger.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
