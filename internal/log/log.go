// Package log provides the small leveled-logging shim used throughout
// the classfile decoder. It mirrors the Logger/Helper split of
// github.com/saferwall/pe/log (Logger, Helper, NewStdLogger, NewFilter,
// FilterLevel) rather than reaching for a third logging library, since
// that package's own client code is what this module is adapted from.
package log

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level is a logging severity level, ordered from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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
	default:
		return "UNKNOWN"
	}
}

// Logger is the minimal sink every component logs through.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes formatted lines to an io.Writer via the standard
// library logger.
type stdLogger struct {
	mu  sync.Mutex
	out *log.Logger
}

// NewStdLogger returns a Logger that writes to w, one line per call.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: log.New(w, "", log.LstdFlags)}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintln(keyvals...)
	l.out.Printf("[%s] %s", level, msg)
	return nil
}

// filterLogger drops records below a minimum level before they reach
// the wrapped Logger.
type filterLogger struct {
	logger Logger
	level  Level
}

// FilterOption configures a filterLogger.
type FilterOption func(*filterLogger)

// FilterLevel sets the minimum level that passes the filter.
func FilterLevel(level Level) FilterOption {
	return func(f *filterLogger) { f.level = level }
}

// NewFilter wraps logger so records below the configured level are discarded.
func NewFilter(logger Logger, opts ...FilterOption) Logger {
	f := &filterLogger{logger: logger, level: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filterLogger) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.logger.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, a ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, fmt.Sprintf(format, a...))
}

func (h *Helper) Debugf(format string, a ...interface{}) { h.log(LevelDebug, format, a...) }
func (h *Helper) Infof(format string, a ...interface{})  { h.log(LevelInfo, format, a...) }
func (h *Helper) Warnf(format string, a ...interface{})  { h.log(LevelWarn, format, a...) }
func (h *Helper) Errorf(format string, a ...interface{}) { h.log(LevelError, format, a...) }
