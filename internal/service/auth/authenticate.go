package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aistomin/andys-backend/internal/domain"
)

// Authenticate checks username and password and issues a token.
// Returns ErrUnauthorized if the user is unknown or the password is wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.ErrUnauthorized
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.compare(s.absentHash(), []byte(password))
			s.log.InfoContext(ctx, "authentication rejected", slog.String("username", username))
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("auth.Authenticate get user: %w", err)
	}

	if err := s.compare([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.InfoContext(ctx, "authentication rejected", slog.String("username", username))
		return "", domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(u.Username)
	if err != nil {
		return "", fmt.Errorf("auth.Authenticate issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user authenticated", slog.Int64("user_id", u.ID))
	return token, nil
}

// ValidateToken resolves a bearer token to its user. Tokens of deleted
// users are rejected.
func (s *Service) ValidateToken(ctx context.Context, token string) (*Principal, error) {
	username, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.ValidateToken get user: %w", err)
	}

	return &Principal{UserID: u.ID, Username: u.Username}, nil
}
