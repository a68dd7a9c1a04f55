// Package logging builds the CLI logger.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed before every log line.
const Prefix = "hvcat"

// NewWithWriter returns a logger writing to w at the named level ("debug",
// "info", ...). Timestamps are only shown at debug level.
func NewWithWriter(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
	})

	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
