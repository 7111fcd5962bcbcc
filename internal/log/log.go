// Package log wraps the standard library logger with named, leveled loggers.
//
// Every component asks for its own logger:
//
//	l := log.ForService("proxy")
//	l.Infof("forwarding to %s", url)
//
// Lines are rendered as "<LEVEL> [name>] message". Debug output is off unless
// enabled globally (SetGlobalDebug) or for a single service (EnableDebugFor).
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)

// Logger is a named logger. The zero value is not usable; use ForService.
type Logger struct {
	name   string
	fields string
	std    *log.Logger
}

// outputHolder keeps atomic.Value storing a single concrete type.
type outputHolder struct {
	w io.Writer
}

var (
	globalDebug  atomic.Bool
	serviceDebug sync.Map // name -> *atomic.Bool
	loggers      sync.Map // name -> *Logger
	output       atomic.Value
)

func init() {
	output.Store(outputHolder{w: os.Stderr})
}

// ForService returns the memoized logger for name.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	w := output.Load().(outputHolder).w
	l := &Logger{name: name, std: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
	actual, _ := loggers.LoadOrStore(name, l)
	return actual.(*Logger)
}

// With returns a child logger that appends key=value pairs to every line.
// Children share the parent's output and debug switches.
func (l *Logger) With(kv map[string]string) *Logger {
	if len(kv) == 0 {
		return l
	}
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(l.fields)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(kv[k])
	}
	return &Logger{name: l.name, fields: b.String(), std: l.std}
}

// SetOutput redirects every logger, existing and future, to w.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	output.Store(outputHolder{w: w})
	loggers.Range(func(_, v any) bool {
		v.(*Logger).std.SetOutput(w)
		return true
	})
}

// Writer returns the current log destination.
func Writer() io.Writer {
	return output.Load().(outputHolder).w
}

func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	v, _ := serviceDebug.LoadOrStore(name, &atomic.Bool{})
	v.(*atomic.Bool).Store(true)
}

func DisableDebugFor(name string) {
	if v, ok := serviceDebug.Load(name); ok {
		v.(*atomic.Bool).Store(false)
	}
}

// DebugEnabledFor reports whether debug lines for name are printed.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if v, ok := serviceDebug.Load(name); ok {
		return v.(*atomic.Bool).Load()
	}
	return false
}

func (l *Logger) emit(level, msg string) {
	l.std.Println(level + " [" + l.name + ">]" + l.fields + " " + msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.emit(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.emit(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
}

// Debugf is a no-op unless debug is enabled for this logger's service.
func (l *Logger) Debugf(format string, args ...any) {
	if !DebugEnabledFor(l.name) {
		return
	}
	l.emit(LevelDebug, fmt.Sprintf(format, args...))
}
