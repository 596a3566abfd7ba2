package logging

import (
	"io"
	"log"
)

// Logger is a leveled wrapper around the standard logger.
type Logger struct {
	info    *log.Logger
	warn    *log.Logger
	error   *log.Logger
	debug   *log.Logger
	verbose bool
}

// NewTo sends info, warn and debug lines to out and errors to errOut.
func NewTo(out, errOut io.Writer, verbose bool) *Logger {
	flags := log.LstdFlags | log.Lmsgprefix
	return &Logger{
		info:    log.New(out, "[INFO]  ", flags),
		warn:    log.New(out, "[WARN]  ", flags),
		error:   log.New(errOut, "[ERROR] ", flags),
		debug:   log.New(out, "[DEBUG] ", flags),
		verbose: verbose,
	}
}

// Discard drops everything. Handy in tests.
func Discard() *Logger {
	return NewTo(io.Discard, io.Discard, false)
}

func (l *Logger) Info(msg string, args ...any) {
	l.info.Printf(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.warn.Printf(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.error.Printf(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.verbose {
		return
	}
	l.debug.Printf(msg, args...)
}
