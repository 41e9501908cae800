package middleware

import (
	"log/slog"
	"net/http"

	"github.com/aistomin/andys-backend/internal/config"
	"github.com/aistomin/andys-backend/internal/metrics"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware so that the first one runs outermost.
// Nil entries are skipped, which lets optional layers be switched off.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				h = mws[i](h)
			}
		}
		return h
	}
}

// StackConfig carries what the global middleware stack needs.
type StackConfig struct {
	Logger *slog.Logger
	Tokens tokenValidator
	CORS   config.CORSConfig
}

// Stack returns the middleware every route goes through. Auth runs before
// the access log so the resolved username is logged.
func Stack(cfg StackConfig) Middleware {
	return Chain(
		RequestID,
		Recovery(cfg.Logger),
		Auth(cfg.Tokens, cfg.Logger),
		Logger(cfg.Logger),
		metrics.Middleware,
		CORS(cfg.CORS),
	)
}
