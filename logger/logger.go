// Package logger is the leveled logger shared by services and handlers.
// Levels are off, normal (info/warn/error) and verbose (adds debug).
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelOff Level = iota
	LevelNormal
	LevelVerbose
)

// ParseLevel maps LOG_LEVEL values to a Level. Unknown values mean normal.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "silent":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

// Logger is safe for concurrent use.
type Logger struct {
	mu     sync.RWMutex
	level  Level
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New writes to out, or os.Stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	flags := log.LstdFlags | log.Lmsgprefix

	return &Logger{
		level:  level,
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) enabled(min Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level >= min
}

func (l *Logger) Debug(format string, args ...any) {
	if l.enabled(LevelVerbose) {
		l.debug.Output(2, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Info(format string, args ...any) {
	if l.enabled(LevelNormal) {
		l.info.Output(2, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Warn(format string, args ...any) {
	if l.enabled(LevelNormal) {
		l.warn.Output(2, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Error(format string, args ...any) {
	if l.enabled(LevelNormal) {
		l.errLog.Output(2, fmt.Sprintf(format, args...))
	}
}
