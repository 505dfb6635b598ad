// Package logging builds the diagnostic logger shared by clarity's
// packages. Diagnostics always go to stderr-style writers so they never mix
// with the summary on stdout.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w. Debug lines are emitted only when debug
// is set; otherwise warnings and errors pass through.
func New(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "clarity",
		ReportTimestamp: debug,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
