package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/aistomin/andys-backend/internal/adapter/mailer"
	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/metrics"
)

// Handle is the watermill handler for the email topic. Every message is
// acknowledged: bad payloads, unknown ids and store errors are logged and
// dropped. Only a cancelled context leaves the message unacknowledged.
func (p *Processor) Handle(msg *message.Message) error {
	ctx := msg.Context()

	var ref domain.EmailRef
	if err := json.Unmarshal(msg.Payload, &ref); err != nil || ref.EmailID <= 0 {
		metrics.EmailsDropped.WithLabelValues(metrics.DropMalformed).Inc()
		p.log.WarnContext(ctx, "dropping malformed email reference",
			slog.String("message_uuid", msg.UUID),
			slog.String("payload", string(msg.Payload)),
		)
		return nil
	}

	err := p.ProcessIncoming(ctx, ref)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	metrics.EmailsDropped.WithLabelValues(metrics.DropStoreErr).Inc()
	p.log.ErrorContext(ctx, "dropping email reference",
		slog.Int64("email_id", ref.EmailID),
		slog.String("error", err.Error()),
	)
	return nil
}

// ProcessIncoming resolves the delivery outcome of one email. Unknown ids
// and emails already in a terminal status are skipped without error, so a
// redelivered reference never changes the status a second time. The email
// is leased before the mailer runs; a reference arriving while another
// delivery holds the lease is dropped, and an expired lease lets a later
// redelivery or requeue retry it.
func (p *Processor) ProcessIncoming(ctx context.Context, ref domain.EmailRef) error {
	log := p.log.With(slog.Int64("email_id", ref.EmailID))

	email, err := p.emails.GetByID(ctx, ref.EmailID)
	if errors.Is(err, domain.ErrNotFound) {
		metrics.EmailsDropped.WithLabelValues(metrics.DropNotFound).Inc()
		log.WarnContext(ctx, "email not found, dropping reference")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load email %d: %w", ref.EmailID, err)
	}

	if email.Status.IsTerminal() {
		metrics.EmailsDropped.WithLabelValues(metrics.DropDuplicate).Inc()
		log.InfoContext(ctx, "duplicate delivery ignored", slog.String("status", email.Status.String()))
		return nil
	}

	claimed, err := p.emails.Claim(ctx, email.ID, p.now().UTC(), p.lease)
	if err != nil {
		return fmt.Errorf("claim email %d: %w", email.ID, err)
	}
	if !claimed {
		metrics.EmailsDropped.WithLabelValues(metrics.DropInFlight).Inc()
		log.InfoContext(ctx, "email held by another delivery, skipping")
		return nil
	}

	status := domain.EmailStatusSent
	var info *string
	if err := p.mailer.Deliver(ctx, mailer.Envelope{
		From:    email.Dispatcher.Email,
		To:      email.Receptor.Email,
		Subject: email.Subject,
		Body:    email.Body,
	}); err != nil {
		status = domain.EmailStatusFailed
		reason := err.Error()
		info = &reason
	}

	changed, err := p.emails.MarkDelivered(ctx, email.ID, status, info)
	if err != nil {
		return fmt.Errorf("mark email %d %s: %w", email.ID, status, err)
	}
	if !changed {
		metrics.EmailsDropped.WithLabelValues(metrics.DropRace).Inc()
		log.WarnContext(ctx, "email resolved concurrently, outcome discarded", slog.String("status", status.String()))
		return nil
	}

	metrics.EmailsProcessed.WithLabelValues(status.String()).Inc()
	attrs := []any{slog.String("status", status.String())}
	if info != nil {
		attrs = append(attrs, slog.String("reason", *info))
	}
	log.InfoContext(ctx, "email processed", attrs...)
	return nil
}
