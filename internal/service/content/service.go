// Package content implements load, save and delete for every content type
// served by the site.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
)

type repo[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Save(ctx context.Context, item T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// kind describes one content type.
type kind[T any] struct {
	name string
	// prepare validates item and fills defaults before it is stored.
	prepare func(item *T, now time.Time) error
	id      func(item T) int64
}

// Service provides CRUD for one content type.
type Service[T any] struct {
	repo repo[T]
	tx   txManager
	kind kind[T]
	now  func() time.Time
	log  *slog.Logger
}

func newService[T any](log *slog.Logger, r repo[T], tx txManager, k kind[T]) *Service[T] {
	return &Service[T]{
		repo: r,
		tx:   tx,
		kind: k,
		now:  time.Now,
		log:  log.With("service", k.name),
	}
}

// Name returns the content type name used in logs and errors.
func (s *Service[T]) Name() string {
	return s.kind.name
}

// Load returns every stored item.
func (s *Service[T]) Load(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.name, err)
	}
	return items, nil
}

// Get returns one item or ErrNotFound.
func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// Save inserts item when its id is zero. Otherwise it updates the stored
// item, inserting a new one when the id is unknown.
func (s *Service[T]) Save(ctx context.Context, item T) (*T, error) {
	if err := s.kind.prepare(&item, s.now().UTC()); err != nil {
		return nil, err
	}

	var saved *T
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Save(ctx, item)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", s.kind.name, err)
	}

	s.log.InfoContext(ctx, "content saved",
		slog.Int64("requested_id", s.kind.id(item)),
		slog.Int64("id", s.kind.id(*saved)),
	)
	return saved, nil
}

// Delete removes an item. An unknown id is ErrNotFound.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%s %d: %w", s.kind.name, id, domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", s.kind.name, err)
	}
	s.log.InfoContext(ctx, "content deleted", slog.Int64("id", id))
	return nil
}
