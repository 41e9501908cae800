package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/metrics"
	"github.com/aistomin/andys-backend/internal/service/dispatch"
)

// ContactUs records the visitor, makes sure the support person exists and
// queues a CONTACT_REQUEST email unless an identical message was created
// within the duplicate window. The steps are not transactional: a person
// stored before a later failure stays stored.
func (s *Service) ContactUs(ctx context.Context, input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input = input.normalized()
	now := s.now().UTC()

	visitor, err := s.upsertVisitor(ctx, input, now)
	if err != nil {
		return nil, err
	}

	support, err := s.supportPerson(ctx, now)
	if err != nil {
		return nil, err
	}

	// Two identical submissions racing here can both pass the check.
	dups, err := s.emails.CountDuplicates(ctx, visitor.ID, support.ID, input.Subject, input.Body, now.Add(-s.window))
	if err != nil {
		return nil, fmt.Errorf("count duplicate emails: %w", err)
	}
	if dups > 0 {
		metrics.ContactRequests.WithLabelValues("duplicate").Inc()
		s.log.WarnContext(ctx, "duplicate contact request skipped",
			slog.Int64("person_id", visitor.ID),
			slog.Int("duplicates", dups),
		)
		return &Result{Sent: false}, nil
	}

	email, err := s.sender.Send(ctx, dispatch.SendInput{
		Dispatcher: *visitor,
		Receptor:   *support,
		Subject:    input.Subject,
		Body:       input.Body,
		Type:       domain.EmailTypeContactRequest,
	})
	if err != nil {
		return nil, fmt.Errorf("send contact request: %w", err)
	}

	metrics.ContactRequests.WithLabelValues("queued").Inc()
	return &Result{Sent: true, Email: email}, nil
}

// upsertVisitor creates the visitor or overwrites their newsletter consent.
func (s *Service) upsertVisitor(ctx context.Context, input Input, now time.Time) (*domain.Person, error) {
	p, err := s.persons.GetByEmail(ctx, input.Email)
	if errors.Is(err, domain.ErrNotFound) {
		p, err = s.persons.Create(ctx, domain.Person{
			Email:            input.Email,
			AllowNewsletters: input.AllowNewsletters,
			CreatedOn:        now,
		})
		if err == nil {
			return p, nil
		}
		// A concurrent first submission inserted the same address.
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("create person: %w", err)
		}
		p, err = s.persons.GetByEmail(ctx, input.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}

	if p.AllowNewsletters == input.AllowNewsletters {
		return p, nil
	}
	p, err = s.persons.UpdateConsent(ctx, p.ID, input.AllowNewsletters)
	if err != nil {
		return nil, fmt.Errorf("update consent: %w", err)
	}
	return p, nil
}

func (s *Service) supportPerson(ctx context.Context, now time.Time) (*domain.Person, error) {
	p, err := s.persons.GetByEmail(ctx, s.supportEmail)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get support person: %w", err)
	}

	name := domain.SupportName
	p, err = s.persons.Create(ctx, domain.Person{
		FirstName:        &name,
		LastName:         &name,
		Email:            s.supportEmail,
		AllowNewsletters: true,
		CreatedOn:        now,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		p, err = s.persons.GetByEmail(ctx, s.supportEmail)
		if err != nil {
			return nil, fmt.Errorf("get support person: %w", err)
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create support person: %w", err)
	}
	return p, nil
}
