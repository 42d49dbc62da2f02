// Package notifier contains ports.Notifier implementations.
package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/workforce-hub/auth-api/internal/pkg/mask"
)

// LogNotifier stands in for an SMS/email gateway by writing to the log. The
// code itself is only emitted at debug level.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, destination, code string, ttlSeconds int) error {
	n.log.Info().
		Str("destination", mask.Mask(destination)).
		Int("ttl_seconds", ttlSeconds).
		Msg("otp dispatched")
	n.log.Debug().
		Str("destination", mask.Mask(destination)).
		Str("code", code).
		Msg("otp code")
	return nil
}
