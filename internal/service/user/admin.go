package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aistomin/andys-backend/internal/domain"
)

// EnsureAdmin creates the bootstrap account when it is missing. An existing
// account keeps its password. An empty password disables the bootstrap.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		s.log.InfoContext(ctx, "admin bootstrap disabled")
		return nil
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("user.EnsureAdmin: %w", err)
	}

	_, err = s.Register(ctx, CredentialsInput{Username: username, Password: password})
	// Another instance may have created it between the lookup and the insert.
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("user.EnsureAdmin: %w", err)
	}

	s.log.WarnContext(ctx, "bootstrap admin created", slog.String("username", username))
	return nil
}
