package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. -v enables debug output (including the
// renderer's dropped-tag lines), -q keeps errors only.
func newLogger(w io.Writer, quiet, verbose bool) *log.Logger {
	level := log.InfoLevel
	switch {
	case verbose:
		level = log.DebugLevel
	case quiet:
		level = log.ErrorLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of one file with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger, now func() time.Time) *progress {
	return &progress{logger: l, start: now()}
}

func (p *progress) done(now func() time.Time, msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", now().Sub(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
