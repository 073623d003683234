// Package logger builds the diagnostic logger. User-facing messages go
// through fatih/color in the CLI; this logger is for what happened inside.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w. Verbose output is human readable at
// debug level; otherwise only warnings and errors are written as JSON lines.
func New(w io.Writer, verbose bool) zerolog.Logger {
	if verbose {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
