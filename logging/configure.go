// Package logging configures the process-wide zerolog logger and adapts it to producer.Logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/AntonStoeckl/cdc-load-producer/config"
)

const fieldRunID = "run_id"

// Configure sets up log.Logger from cfg, writing to out (os.Stdout when nil), and returns it.
// Human-readable console output is the default; JSON lines are written when cfg.JSONStdout is set.
// An unknown level falls back to info.
func Configure(cfg config.Log, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	if out == nil {
		out = os.Stdout
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writer := out
	if !cfg.JSONStdout {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(level)

	return log.Logger
}

// WithRunID tags every line of l with a fresh run id, so lines of concurrent producers can be told apart.
func WithRunID(l zerolog.Logger) (zerolog.Logger, string) {
	runID := uuid.NewString()

	return l.With().Str(fieldRunID, runID).Logger(), runID
}
