package email

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleSender logs messages instead of delivering them. Used when no
// SendGrid API key is configured (development default).
type ConsoleSender struct {
	log zerolog.Logger
}

var _ Sender = (*ConsoleSender)(nil)

// NewConsoleSender creates a log-only sender.
func NewConsoleSender(log zerolog.Logger) *ConsoleSender {
	return &ConsoleSender{log: log.With().Str("component", "console_email").Logger()}
}

// Send writes the message to the log.
func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	addrs := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		addrs = append(addrs, to.Email)
	}
	s.log.Info().
		Strs("to", addrs).
		Str("subject", msg.Subject).
		Str("body", msg.TextBody).
		Msg("Email (console only)")
	return nil
}
