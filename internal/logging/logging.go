// Package logging provides the run logger: informational records go to
// stdout, errors go to stderr so CI logs can tell test failures apart from
// infrastructure failures.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures the logger.
type Options struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string
	// Out receives debug, info and warn records (default: os.Stdout)
	Out io.Writer
	// Err receives error records (default: os.Stderr)
	Err io.Writer
	// Prefix is the component name prefix
	Prefix string
	// TimeFormat is the time format string (default: RFC3339)
	TimeFormat string
	// ReportTimestamp adds timestamps to log entries
	ReportTimestamp bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Level:           "info",
		Out:             os.Stdout,
		Err:             os.Stderr,
		Prefix:          "e2erun",
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
	}
}

// Logger splits records across two streams.
type Logger struct {
	out *log.Logger
	err *log.Logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New creates a Logger from options.
func New(opts Options) *Logger {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = time.RFC3339
	}
	newLogger := func(w io.Writer) *log.Logger {
		return log.NewWithOptions(w, log.Options{
			Level:           parseLevel(opts.Level),
			Prefix:          opts.Prefix,
			TimeFormat:      opts.TimeFormat,
			ReportTimestamp: opts.ReportTimestamp,
		})
	}
	return &Logger{out: newLogger(opts.Out), err: newLogger(opts.Err)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return New(Options{Out: io.Discard, Err: io.Discard})
}

// Debug logs a debug message with key-value pairs.
func (l *Logger) Debug(msg interface{}, keyvals ...interface{}) {
	l.out.Debug(msg, keyvals...)
}

// Info logs an info message with key-value pairs.
func (l *Logger) Info(msg interface{}, keyvals ...interface{}) {
	l.out.Info(msg, keyvals...)
}

// Warn logs a warning message with key-value pairs.
func (l *Logger) Warn(msg interface{}, keyvals ...interface{}) {
	l.out.Warn(msg, keyvals...)
}

// Error logs an error message on the error stream.
func (l *Logger) Error(msg interface{}, keyvals ...interface{}) {
	l.err.Error(msg, keyvals...)
}

// With returns a logger with additional default key-value pairs.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{out: l.out.With(keyvals...), err: l.err.With(keyvals...)}
}

// SetLevel changes the minimum level of both streams.
func (l *Logger) SetLevel(level string) {
	l.out.SetLevel(parseLevel(level))
	l.err.SetLevel(parseLevel(level))
}
