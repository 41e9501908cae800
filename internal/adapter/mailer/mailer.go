// Package mailer delivers rendered emails. The email consumer picks one
// implementation at startup.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aistomin/andys-backend/internal/config"
)

// ErrUndeliverable marks a recipient the mailer refuses to deliver to.
var ErrUndeliverable = errors.New("undeliverable recipient")

// Envelope is a single message ready to send.
type Envelope struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers an envelope or reports why it could not.
type Mailer interface {
	Deliver(ctx context.Context, env Envelope) error
}

// New returns the mailer selected by cfg.Driver.
func New(ctx context.Context, cfg config.MailConfig, log *slog.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.MailSentinel:
		return NewSentinel(cfg.FailureSuffix, log), nil
	case config.MailSES:
		return NewSES(ctx, cfg, log)
	}
	return nil, fmt.Errorf("mailer: unknown driver %q", cfg.Driver)
}

// Sentinel accepts every envelope except those addressed to a recipient
// ending with a fixed suffix. It stands in for a real provider in local and
// test environments.
type Sentinel struct {
	suffix string
	log    *slog.Logger
}

// NewSentinel creates a Sentinel failing recipients that end with suffix.
func NewSentinel(suffix string, log *slog.Logger) *Sentinel {
	return &Sentinel{suffix: strings.ToLower(suffix), log: log.With("mailer", "sentinel")}
}

func (s *Sentinel) Deliver(ctx context.Context, env Envelope) error {
	if s.suffix != "" && strings.HasSuffix(strings.ToLower(env.To), s.suffix) {
		return fmt.Errorf("deliver to %s: %w", env.To, ErrUndeliverable)
	}
	s.log.DebugContext(ctx, "email accepted", slog.String("to", env.To), slog.String("subject", env.Subject))
	return nil
}
