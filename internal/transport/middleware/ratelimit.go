package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits requests to requests per window for each client IP.
// A non-positive limit disables it. The client IP is the connection's
// remote address unless trustProxy is set, in which case True-Client-IP,
// X-Real-IP and X-Forwarded-For win.
func RateLimit(requests int, window time.Duration, trustProxy bool) Middleware {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	key := httprate.KeyByIP
	if trustProxy {
		key = httprate.KeyByRealIP
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		}),
	)
}
