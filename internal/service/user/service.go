// Package user manages the accounts allowed to edit site content.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/aistomin/andys-backend/internal/domain"
)

type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	Update(ctx context.Context, u domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements user management operations.
type Service struct {
	users      userRepo
	bcryptCost int
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates a user service hashing passwords at bcryptCost.
func NewService(log *slog.Logger, users userRepo, bcryptCost int) *Service {
	return &Service{
		users:      users,
		bcryptCost: bcryptCost,
		now:        time.Now,
		log:        log.With("service", "user"),
	}
}
