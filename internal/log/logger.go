package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single key/value pair attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes timestamped, leveled log lines to an output stream
type Logger struct {
	out    io.Writer
	fields []Field
}

// Option configures a Logger
type Option func(*Logger)

// WithOutput directs log lines to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// NewLogger creates a new Logger writing to stdout unless configured otherwise
func NewLogger(opts ...Option) *Logger {
	l := &Logger{out: os.Stdout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles emission of debug-level lines
func SetDebug(debug bool) {
	isDebug = debug
}

// With returns a child logger that carries the given fields on every line
func (l *Logger) With(fields ...Field) *Logger {
	child := &Logger{out: l.out}
	child.fields = append(child.fields, l.fields...)
	child.fields = append(child.fields, fields...)
	return child
}

// LogWithFields returns the package logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

func (l *Logger) Info(format string, args ...interface{})  { l.log("INFO", format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log("WARN", format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log("ERROR", format, args...) }

// Debug logs a formatted message when debug mode is on
func (l *Logger) Debug(format string, args ...interface{}) {
	if isDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *Logger) log(level, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	if len(l.fields) > 0 {
		msg += " " + l.formatFields()
	}
	fmt.Fprintf(l.out, "[%s] %s: %s\n", timestamp, level, msg)
}

func (l *Logger) formatFields() string {
	parts := make([]string, 0, len(l.fields))
	for _, f := range l.fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}

// Package-level helpers using the shared logger

func Info(format string, args ...interface{}) {
	logger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	logger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	logger.Error(format, args...)
}

func Debug(format string, args ...interface{}) {
	logger.Debug(format, args...)
}

// Fatal logs the message and terminates the process
func Fatal(format string, args ...interface{}) {
	logger.log("FATAL", format, args...)
	os.Exit(1)
}
