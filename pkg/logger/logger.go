package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	SetConsoleWriter(os.Stderr)
}

// Log returns the process-wide logger
func Log() *zerolog.Logger {
	return &log
}

// Component returns a child logger tagged with a component name
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func SetConsoleWriter(w io.Writer) {
	log = zerolog.New(zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.TimeFormat = "15:04:05.000"
	})).With().Timestamp().Logger()
}

func SetJSONWriter(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

func SetLogger(logger zerolog.Logger) {
	log = logger
}

// SetLevel sets the global level from a name such as "debug" or "warn"
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Configure selects the output format ("console" or "json") and level
func Configure(w io.Writer, format, level string) error {
	switch strings.ToLower(format) {
	case "", "console":
		SetConsoleWriter(w)
	case "json":
		SetJSONWriter(w)
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
	return SetLevel(level)
}
