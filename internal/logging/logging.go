// Package logging provides the diagnostic logging seam for osready.
//
// The core packages accept a Logger rather than writing to a global, so
// callers can plug in their own implementation. The default implementation
// writes leveled lines to a writer; a no-op logger is available for tests
// and for components that were handed nothing.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger is the minimal logging interface the core components depend on.
// Key-value pairs are appended to the message as "key=value" fields.
type Logger interface {
	// Debug logs verbose diagnostic detail (cleanup steps, rule hits).
	Debug(msg string, keysAndValues ...interface{})

	// Info logs the run's diagnostic trace (facts, identity, every
	// intermediate check result).
	Info(msg string, keysAndValues ...interface{})

	// Warn logs recovered failures (fetch degraded to no records).
	Warn(msg string, keysAndValues ...interface{})

	// Error logs failures that end the run.
	Error(msg string, keysAndValues ...interface{})
}

// Level controls which messages a WriterLogger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name to a Level. Unknown names default to info.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// WriterLogger is a Logger writing "LEVEL msg key=value ..." lines to a
// writer. Safe for concurrent use.
type WriterLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New creates a WriterLogger emitting messages at or above level.
func New(out io.Writer, level Level) *WriterLogger {
	return &WriterLogger{out: out, level: level}
}

func (l *WriterLogger) log(level Level, name, msg string, keysAndValues []interface{}) {
	if level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" ")
	sb.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	sb.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, sb.String())
}

func (l *WriterLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, "DEBUG", msg, keysAndValues)
}

func (l *WriterLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, "INFO", msg, keysAndValues)
}

func (l *WriterLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, "WARN", msg, keysAndValues)
}

func (l *WriterLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, "ERROR", msg, keysAndValues)
}

// noopLogger discards everything.
type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Noop returns a Logger that does nothing.
func Noop() Logger {
	return noopLogger{}
}
