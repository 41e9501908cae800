// Package contact turns Contact-Us submissions into queued support emails.
package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/service/dispatch"
)

type personRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Person, error)
	Create(ctx context.Context, p domain.Person) (*domain.Person, error)
	UpdateConsent(ctx context.Context, id int64, allow bool) (*domain.Person, error)
}

type emailRepo interface {
	CountDuplicates(ctx context.Context, dispatcherID, receptorID int64, subject, body string, since time.Time) (int, error)
}

type sender interface {
	Send(ctx context.Context, input dispatch.SendInput) (*domain.EmailMessage, error)
}

// Service handles Contact-Us submissions.
type Service struct {
	persons      personRepo
	emails       emailRepo
	sender       sender
	supportEmail string
	window       time.Duration
	now          func() time.Time
	log          *slog.Logger
}

// NewService creates a contact service. Submissions repeating an earlier
// message within window are not sent again.
func NewService(
	log *slog.Logger,
	persons personRepo,
	emails emailRepo,
	sender sender,
	supportEmail string,
	window time.Duration,
) *Service {
	return &Service{
		persons:      persons,
		emails:       emails,
		sender:       sender,
		supportEmail: supportEmail,
		window:       window,
		now:          time.Now,
		log:          log.With("service", "contact"),
	}
}
