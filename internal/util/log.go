package util

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a timestamped zerolog logger at the given level,
// falling back to info for unknown level names.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}
