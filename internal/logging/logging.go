// Package logging configures structured logging for the CLI.
//
// It is a thin layer over logrus that keeps a small, typed surface:
// levels, text or JSON output, preset fields and HTTP request/response
// tracing for the API client.
//
// # Usage
//
//	logger := logging.New(logging.Options{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	    Output: os.Stderr,
//	})
//
//	logger.Info("Asking model", logging.Fields{
//	    "model":    "gpt-4o",
//	    "messages": 2,
//	})
//
// Packages that only need a debug line log through logrus directly;
// Setup configures that shared logger from the command line flags.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelWarn
	}
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelError:
		return logrus.ErrorLevel
	case LevelNone:
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

// Format represents the output format
type Format int

const (
	// FormatText outputs human-readable text
	FormatText Format = iota
	// FormatJSON outputs machine-readable JSON
	FormatJSON
)

func (f Format) formatter() logrus.Formatter {
	if f == FormatJSON {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
}

// Fields is a map of structured log fields
type Fields map[string]interface{}

// Options configures the logger
type Options struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger provides structured logging capabilities
type Logger struct {
	base *logrus.Logger
}

// DefaultLogger wraps the shared logrus logger
var DefaultLogger = &Logger{base: logrus.StandardLogger()}

// New creates a new Logger with the given options
func New(opts Options) *Logger {
	l := &Logger{base: logrus.New()}
	l.apply(opts)
	return l
}

// Setup configures the shared logger used by DefaultLogger and by
// packages that call logrus directly.
func Setup(opts Options) *Logger {
	DefaultLogger.apply(opts)
	return DefaultLogger
}

func (l *Logger) apply(opts Options) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Level == LevelNone {
		opts.Output = io.Discard
	}
	l.base.SetOutput(opts.Output)
	l.base.SetFormatter(opts.Format.formatter())
	l.base.SetLevel(opts.Level.logrusLevel())
}

// SetLevel changes the log level
func (l *Logger) SetLevel(level Level) {
	l.base.SetLevel(level.logrusLevel())
}

// SetOutput changes the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.entry(nil, fields...).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.entry(nil, fields...).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.entry(nil, fields...).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.entry(err, fields...).Error(msg)
}

func (l *Logger) entry(err error, fields ...Fields) *logrus.Entry {
	e := logrus.NewEntry(l.base).WithFields(merge(fields...))
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

func merge(fields ...Fields) logrus.Fields {
	merged := make(logrus.Fields)
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

// WithFields creates a child logger with preset fields
func (l *Logger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{
		logger: l,
		fields: fields,
	}
}

// FieldLogger is a logger with preset fields
type FieldLogger struct {
	logger *Logger
	fields Fields
}

// Debug logs a debug message with preset fields
func (fl *FieldLogger) Debug(msg string, fields ...Fields) {
	fl.logger.Debug(msg, fl.mergeFields(fields...)...)
}

// Info logs an info message with preset fields
func (fl *FieldLogger) Info(msg string, fields ...Fields) {
	fl.logger.Info(msg, fl.mergeFields(fields...)...)
}

// Warn logs a warning message with preset fields
func (fl *FieldLogger) Warn(msg string, fields ...Fields) {
	fl.logger.Warn(msg, fl.mergeFields(fields...)...)
}

// Error logs an error message with preset fields
func (fl *FieldLogger) Error(msg string, err error, fields ...Fields) {
	fl.logger.Error(msg, err, fl.mergeFields(fields...)...)
}

// mergeFields merges preset fields with additional fields
func (fl *FieldLogger) mergeFields(fields ...Fields) []Fields {
	result := make([]Fields, 0, len(fields)+1)
	result = append(result, fl.fields)
	result = append(result, fields...)
	return result
}

// Package-level convenience functions using DefaultLogger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...Fields) {
	DefaultLogger.Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...Fields) {
	DefaultLogger.Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...Fields) {
	DefaultLogger.Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, err error, fields ...Fields) {
	DefaultLogger.Error(msg, err, fields...)
}
