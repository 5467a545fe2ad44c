package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is shown before every log line
const Prefix = "cpm"

// New creates the command logger. Debug output is only shown when debug is set.
func New(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  log.InfoLevel,
	})
	Configure(logger, w, debug)
	return logger
}

// Configure redirects an existing logger and switches debug output on or off.
// The logger's own lock makes this safe while other goroutines log.
func Configure(logger *log.Logger, w io.Writer, debug bool) {
	logger.SetOutput(w)
	if debug {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
		return
	}
	logger.SetLevel(log.InfoLevel)
	logger.SetReportTimestamp(false)
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}
