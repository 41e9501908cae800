package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aistomin/andys-backend/internal/domain"
	"github.com/aistomin/andys-backend/internal/service/auth"
	"github.com/aistomin/andys-backend/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func validatorFor(valid string) *tokenValidatorMock {
	return &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (*auth.Principal, error) {
			if token == valid {
				return &auth.Principal{UserID: 1, Username: "admin"}, nil
			}
			return nil, domain.ErrUnauthorized
		},
	}
}

// usernameHandler writes the context username, or "anonymous".
var usernameHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	name, ok := ctxutil.UsernameFromCtx(r.Context())
	if !ok {
		name = "anonymous"
	}
	_, _ = w.Write([]byte(name))
})

func TestAuth_ValidToken(t *testing.T) {
	wrapped := Auth(validatorFor("valid-token"), discard)(usernameHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Body.String(); got != "admin" {
		t.Errorf("expected username admin, got %q", got)
	}
}

func TestAuth_InvalidTokenIsAnonymous(t *testing.T) {
	wrapped := Auth(validatorFor("valid-token"), discard)(usernameHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "anonymous" {
		t.Errorf("expected anonymous request, got %q", got)
	}
}

func TestAuth_ValidatorFailureIsAnonymous(t *testing.T) {
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(context.Context, string) (*auth.Principal, error) {
			return nil, errors.New("db down")
		},
	}
	wrapped := Auth(validator, discard)(usernameHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "anonymous" {
		t.Errorf("expected anonymous request, got %q", got)
	}
}

func TestAuth_NoAuthHeader(t *testing.T) {
	validator := validatorFor("valid-token")
	wrapped := Auth(validator, discard)(usernameHandler)

	tests := []string{"", "Basic dXNlcjpwYXNz", "Bearer", "Bearer "}
	for _, header := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		if got := rec.Body.String(); got != "anonymous" {
			t.Errorf("header %q: expected anonymous request, got %q", header, got)
		}
	}
	if n := len(validator.ValidateTokenCalls()); n != 0 {
		t.Errorf("expected validator not to be called, got %d calls", n)
	}
}

func TestAuth_SchemeCaseInsensitive(t *testing.T) {
	wrapped := Auth(validatorFor("valid-token"), discard)(usernameHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer valid-token")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "admin" {
		t.Errorf("expected username admin, got %q", got)
	}
}

func TestRequireAuth(t *testing.T) {
	wrapped := RequireAuth(usernameHandler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/videos", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for anonymous, got %d", http.StatusUnauthorized, rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}

	req := httptest.NewRequest(http.MethodPost, "/videos", nil)
	req = req.WithContext(ctxutil.WithUsername(req.Context(), "admin"))
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for authenticated, got %d", http.StatusOK, rec.Code)
	}
}
