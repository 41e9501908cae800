package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/aistomin/andys-backend/internal/domain"
)

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}

// Register creates a user. Returns ErrAlreadyExists if the username is taken.
func (s *Service) Register(ctx context.Context, input CredentialsInput) (*domain.User, error) {
	input = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	u, err := s.users.Create(ctx, domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		CreatedOn:    s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("user.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.Int64("user_id", u.ID),
		slog.String("username", u.Username),
	)
	return u, nil
}

// Update replaces the username and password of an existing user.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.User, error) {
	input.CredentialsInput = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.ID <= 0 {
		return nil, domain.ErrNotFound
	}

	existing, err := s.users.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	existing.Username = input.Username
	existing.PasswordHash = hash

	u, err := s.users.Update(ctx, *existing)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.log.InfoContext(ctx, "user updated", slog.Int64("user_id", u.ID))
	return u, nil
}

// Delete removes a user. Returns ErrNotFound if no such user exists.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrNotFound
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "user deleted", slog.Int64("user_id", id))
	return nil
}

// ResetPassword sets a new password for username, creating the user when
// it does not exist yet.
func (s *Service) ResetPassword(ctx context.Context, input CredentialsInput) (*domain.User, error) {
	input = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(ctx, input.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return s.Register(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("user.ResetPassword: %w", err)
	}

	return s.Update(ctx, UpdateInput{ID: existing.ID, CredentialsInput: input})
}

func (s *Service) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
