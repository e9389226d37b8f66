package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// initLogger writes human-readable logs to stderr so stdout stays reserved
// for conversion output. MSGCONV_LOG_LEVEL selects the level (default info).
func initLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(os.Getenv("MSGCONV_LOG_LEVEL"))))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}
