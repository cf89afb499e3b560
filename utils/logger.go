package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger provides leveled logging throughout the application.
type Logger struct {
	out    io.Writer
	errOut io.Writer
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger() *Logger {
	return &Logger{out: os.Stdout, errOut: os.Stderr}
}

// NewLoggerTo creates a Logger writing to the given writers. Used by tests
// to capture or discard output.
func NewLoggerTo(out, errOut io.Writer) *Logger {
	return &Logger{out: out, errOut: errOut}
}

func (l *Logger) logf(w io.Writer, colour, level, format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "[%s] \033[%sm%s\033[0m %s\n", ts, colour, level, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.logf(l.out, "32", "INFO ", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.logf(l.out, "33", "WARN ", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.logf(l.errOut, "31", "ERROR", format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.logf(l.out, "36", "DEBUG", format, args...)
}
