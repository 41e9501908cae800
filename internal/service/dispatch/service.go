// Package dispatch records outgoing emails and resolves their delivery
// outcome asynchronously through the message queue.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/aistomin/andys-backend/internal/adapter/mailer"
	"github.com/aistomin/andys-backend/internal/domain"
)

type emailRepo interface {
	Create(ctx context.Context, m domain.EmailMessage) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.EmailMessage, error)
	Claim(ctx context.Context, id int64, now time.Time, lease time.Duration) (bool, error)
	MarkDelivered(ctx context.Context, id int64, status domain.EmailStatus, info *string) (bool, error)
}

type deliverer interface {
	Deliver(ctx context.Context, env mailer.Envelope) error
}

// Dispatcher persists new emails and publishes a reference to each.
type Dispatcher struct {
	emails    emailRepo
	publisher message.Publisher
	topic     string
	now       func() time.Time
	log       *slog.Logger
}

// NewDispatcher creates a Dispatcher publishing to topic.
func NewDispatcher(log *slog.Logger, emails emailRepo, publisher message.Publisher, topic string) *Dispatcher {
	return &Dispatcher{
		emails:    emails,
		publisher: publisher,
		topic:     topic,
		now:       time.Now,
		log:       log.With("service", "dispatch"),
	}
}

// DeliveryLease bounds how long one consumer holds an email before a
// redelivered reference may try it again.
const DeliveryLease = 5 * time.Minute

// Processor consumes email references and records the delivery outcome.
type Processor struct {
	emails emailRepo
	mailer deliverer
	lease  time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// NewProcessor creates a Processor delivering through m.
func NewProcessor(log *slog.Logger, emails emailRepo, m deliverer) *Processor {
	return &Processor{
		emails: emails,
		mailer: m,
		lease:  DeliveryLease,
		now:    time.Now,
		log:    log.With("service", "email-consumer"),
	}
}
