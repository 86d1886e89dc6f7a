package pptxraster

import (
	"log"
	"os"
)

// LogLevel selects the verbosity of a Logger. No structured-logging library
// appears anywhere in the retrieval pack, so this sits directly on the
// standard library's log.Logger rather than pulling one in.
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger is a minimal leveled wrapper around log.Logger, used to surface
// UnsupportedFeature fallbacks and other render-time diagnostics without
// making them fatal.
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// NewLogger returns a Logger writing to stderr at the given level.
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *Logger) logf(level LogLevel, prefix, format string, args []interface{}) {
	if l == nil || l.level < level {
		return
	}
	l.out.Printf(prefix+": "+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) { l.logf(LogLevelError, "error", format, args) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LogLevelWarn, "warn", format, args) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LogLevelInfo, "info", format, args) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LogLevelDebug, "debug", format, args) }
