// Package auth exchanges credentials for bearer tokens and resolves tokens
// back to users.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/aistomin/andys-backend/internal/domain"
)

type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type tokenManager interface {
	GenerateToken(username string) (string, error)
	ValidateToken(token string) (string, error)
}

// Principal is the authenticated caller behind a token.
type Principal struct {
	UserID   int64
	Username string
}

// Service implements authentication.
type Service struct {
	users  userRepo
	tokens tokenManager
	log    *slog.Logger

	// absentHash is compared against when the username is unknown, so both
	// rejections cost one bcrypt comparison at the stored hashes' cost.
	absentHash func() []byte
	compare    func(hash, password []byte) error
}

// NewService creates an auth service. bcryptCost should match the cost
// stored passwords are hashed with.
func NewService(log *slog.Logger, users userRepo, tokens tokenManager, bcryptCost int) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		log:    log.With("service", "auth"),
		absentHash: sync.OnceValue(func() []byte {
			h, err := bcrypt.GenerateFromPassword([]byte("absent user"), bcryptCost)
			if err != nil {
				h, _ = bcrypt.GenerateFromPassword([]byte("absent user"), bcrypt.DefaultCost)
			}
			return h
		}),
		compare: bcrypt.CompareHashAndPassword,
	}
}
