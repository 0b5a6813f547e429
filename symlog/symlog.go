// Package symlog is the structured-logging collaborator used by Network's
// execution path and by diagnostic error reporting, a thin zerolog wrapper
// in the style of EasyRobot's pkg/logger.
package symlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the package-wide logger. Callers that want silence can set it to
// zerolog.Nop() before use.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// SetLevel adjusts the minimum emitted level, e.g. from a RunConfig loaded
// by netfile.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return
	}
	Log = Log.Level(lvl)
}
