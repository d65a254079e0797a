// Package logger provides structured JSON logging and run metrics for the herb scraper.
//
// Every entry is a single JSON line carrying a timestamp, level, message, the
// source location of the call, and optional structured fields. A Logger fans
// entries out to one or more sinks, each with its own minimum level, so a run
// can keep a full debug.log next to a shorter info.log.
//
// Example usage:
//
//	logger.Info("Fetching herb page", logger.Fields{
//	    "herb_id": 1439,
//	    "url":     url,
//	})
//
//	logger.Error("Data extraction failed", logger.Fields{
//	    "herb_name": "mycobloom",
//	}, err)
//
//	logger.IncrCounter("extract.failure")
//	logger.RecordTiming("http.fetch", duration)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps a level name to a Level, falling back to INFO.
func ParseLevel(name string) Level {
	level := Level(name)
	if _, ok := levelRank[level]; ok {
		return level
	}
	return LevelInfo
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Location  string `json:"location,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

type sink struct {
	minLevel Level
	output   io.Writer
}

// Logger writes structured entries to its sinks
type Logger struct {
	mu      sync.Mutex
	sinks   []sink
	closers []io.Closer
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr)
}

// New creates a logger with a single sink. Messages below level are discarded.
func New(level Level, output io.Writer) *Logger {
	l := &Logger{}
	l.AddSink(level, output)
	return l
}

// NewRunLogger creates the logger used by a pipeline run: debug.log and
// info.log in dir (truncated on open) plus console output at consoleLevel.
func NewRunLogger(dir string, consoleLevel Level, console io.Writer) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	l := New(consoleLevel, console)
	for _, f := range []struct {
		name  string
		level Level
	}{
		{"debug.log", LevelDebug},
		{"info.log", LevelInfo},
	} {
		file, err := os.Create(filepath.Join(dir, f.name))
		if err != nil {
			l.Close() // nolint:errcheck
			return nil, fmt.Errorf("opening %s: %w", f.name, err)
		}
		l.AddSink(f.level, file)
		l.closers = append(l.closers, file)
	}
	return l, nil
}

// AddSink attaches another output receiving entries at level and above.
func (l *Logger) AddSink(level Level, output io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, sink{minLevel: level, output: output})
}

// Close closes any files opened by NewRunLogger.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

// SetDefault sets the logger used by the package-level functions.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the logger used by the package-level functions.
func Default() *Logger {
	return defaultLogger
}

// log writes a structured log entry to every sink whose level allows it.
// skip is the number of stack frames between the caller of interest and log.
func (l *Logger) log(skip int, level Level, message string, fields Fields, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var targets []io.Writer
	for _, s := range l.sinks {
		if shouldLog(s.minLevel, level) {
			targets = append(targets, s.output)
		}
	}
	if len(targets) == 0 {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if _, file, line, ok := runtime.Caller(skip); ok {
		entry.Location = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// Fallback to plain text if a field cannot be encoded
		for _, w := range targets {
			fmt.Fprintf(w, "[%s] %s: %s (marshal error: %v)\n",
				entry.Timestamp, entry.Level, entry.Message, marshalErr)
		}
		return
	}

	for _, w := range targets {
		fmt.Fprintln(w, string(data))
	}
}

func shouldLog(minLevel, level Level) bool {
	return levelRank[level] >= levelRank[minLevel]
}

// Debug logs detailed diagnostic information.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(2, LevelDebug, message, fields, nil)
}

// Info logs general progress information.
func (l *Logger) Info(message string, fields Fields) {
	l.log(2, LevelInfo, message, fields, nil)
}

// Warn logs a condition that does not stop the run, such as an unmapped herb.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(2, LevelWarn, message, fields, nil)
}

// Error logs a failure together with the error that caused it.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(2, LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.log(2, LevelDebug, message, fields, nil)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.log(2, LevelInfo, message, fields, nil)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.log(2, LevelWarn, message, fields, nil)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.log(2, LevelError, message, fields, err)
}

// Snippet shortens page content for log fields.
func Snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
