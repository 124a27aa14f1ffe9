package logging

import (
	"github.com/rs/zerolog"
)

// Adapter implements producer.Logger on top of zerolog.
// The variadic arguments are alternating key/value pairs and become structured fields.
type Adapter struct {
	l zerolog.Logger
}

// NewAdapter creates a new Adapter writing to l.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

func (a *Adapter) Debug(msg string, args ...any) {
	a.l.Debug().Fields(args).Msg(msg)
}

func (a *Adapter) Info(msg string, args ...any) {
	a.l.Info().Fields(args).Msg(msg)
}

func (a *Adapter) Warn(msg string, args ...any) {
	a.l.Warn().Fields(args).Msg(msg)
}

func (a *Adapter) Error(msg string, args ...any) {
	a.l.Error().Fields(args).Msg(msg)
}
