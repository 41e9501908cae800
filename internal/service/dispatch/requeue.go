package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type staleLister interface {
	ListStale(ctx context.Context, before time.Time, limit int) ([]int64, error)
}

// Requeuer republishes emails left CREATED because their original publish
// failed. Consumers skip terminal messages, so republishing one that is
// merely slow is harmless.
type Requeuer struct {
	emails     staleLister
	dispatcher *Dispatcher
	log        *slog.Logger
}

// NewRequeuer creates a Requeuer publishing through d.
func NewRequeuer(log *slog.Logger, emails staleLister, d *Dispatcher) *Requeuer {
	return &Requeuer{
		emails:     emails,
		dispatcher: d,
		log:        log.With("service", "requeue"),
	}
}

// Run republishes up to limit CREATED emails older than age and returns
// how many were published. It stops at the first publish error.
func (r *Requeuer) Run(ctx context.Context, age time.Duration, limit int) (int, error) {
	before := r.dispatcher.now().UTC().Add(-age)

	ids, err := r.emails.ListStale(ctx, before, limit)
	if err != nil {
		return 0, fmt.Errorf("dispatch.Requeue list: %w", err)
	}

	for i, id := range ids {
		if err := r.dispatcher.publish(ctx, id); err != nil {
			return i, fmt.Errorf("dispatch.Requeue: %w", err)
		}
		r.log.InfoContext(ctx, "email requeued", slog.Int64("email_id", id))
	}
	return len(ids), nil
}
