package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/metrics"
)

// Send stores a CREATED email and publishes its id. It returns as soon as
// the reference is handed to the broker. When publishing fails the row
// stays CREATED and the error is returned.
func (d *Dispatcher) Send(ctx context.Context, input SendInput) (*domain.EmailMessage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	msg := domain.EmailMessage{
		Dispatcher: input.Dispatcher,
		Receptor:   input.Receptor,
		Subject:    input.Subject,
		Body:       input.Body,
		Status:     domain.EmailStatusCreated,
		Type:       input.Type,
		CreatedOn:  d.now().UTC(),
	}

	id, err := d.emails.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("create email: %w", err)
	}
	msg.ID = id

	if err := d.publish(ctx, id); err != nil {
		return nil, err
	}

	d.log.InfoContext(ctx, "email queued",
		slog.Int64("email_id", id),
		slog.String("type", msg.Type.String()),
	)

	return &msg, nil
}

func (d *Dispatcher) publish(ctx context.Context, id int64) error {
	payload, err := json.Marshal(domain.EmailRef{EmailID: id})
	if err != nil {
		return fmt.Errorf("encode email ref: %w", err)
	}

	wm := message.NewMessage(watermill.NewUUID(), payload)
	wm.SetContext(ctx)
	if err := d.publisher.Publish(d.topic, wm); err != nil {
		return fmt.Errorf("publish email %d: %w", id, err)
	}
	metrics.EmailsPublished.Inc()
	return nil
}
