package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aistomin/andys-backend/internal/config"
	"github.com/aistomin/andys-backend/internal/metrics"
	"github.com/aistomin/andys-backend/internal/service/auth"
	"github.com/aistomin/andys-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*auth.Principal, error)
}

// RouterDeps holds everything the HTTP surface is built from.
type RouterDeps struct {
	Log       *slog.Logger
	Tokens    tokenValidator
	Auth      *AuthHandler
	Contact   *ContactHandler
	Users     *UserHandler
	Health    *HealthHandler
	Content   []ContentRoutes
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
}

// NewRouter builds the chi router. Reads are public; every mutation
// requires a bearer token.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Stack(middleware.StackConfig{
		Logger: d.Log,
		Tokens: d.Tokens,
		CORS:   d.CORS,
	}))

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	r.Handle("/metrics", metrics.Handler())

	r.With(middleware.RateLimit(d.RateLimit.AuthRequests, d.RateLimit.Window, d.RateLimit.TrustProxy)).
		Post("/authenticate", d.Auth.Authenticate)
	r.With(middleware.RateLimit(d.RateLimit.ContactRequests, d.RateLimit.Window, d.RateLimit.TrustProxy)).
		Post("/contact/us", d.Contact.ContactUs)

	for _, c := range d.Content {
		r.Route(c.Path(), func(r chi.Router) {
			r.Get("/", c.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", c.Create)
				r.Put("/", c.Update)
				r.Delete("/{id}", c.Delete)
			})
		})
	}

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", d.Users.List)
		r.Post("/", d.Users.Register)
		r.Put("/", d.Users.Update)
		r.Post("/register", d.Users.Register)
		r.Delete("/{id}", d.Users.Delete)
	})

	return r
}
