package unittest

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger returns a zerolog logger for tests. It discards output unless the
// TEST_LOG_LEVEL environment variable is set to a valid zerolog level.
func Logger() zerolog.Logger {
	var writer io.Writer = io.Discard
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("TEST_LOG_LEVEL")); err == nil && os.Getenv("TEST_LOG_LEVEL") != "" {
		writer = os.Stderr
		level = lvl
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
