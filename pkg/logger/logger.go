package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level represents logging level
type Level = zerolog.Level

// Logger levels
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// New builds a console-writer logger for the given output.
func New(out io.Writer, level Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Init replaces the process-global logger. Binaries call it once at startup
// so packages logging through zerolog's global share one configuration.
func Init(level Level) {
	log.Logger = New(os.Stdout, level)
}
