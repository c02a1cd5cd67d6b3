package api

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	domainerrors "github.com/postdeskapp/postdesk-server/internal/errors"
	"github.com/postdeskapp/postdesk-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a new rate limiter.
// rate: number of requests allowed per interval
// interval: time period for rate (e.g., time.Minute)
// burst: maximum burst size
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// WriteRateLimitMiddleware rate limits mutating requests by client IP.
// Reads pass through untouched; writes over the limit get a 429.
func WriteRateLimitMiddleware(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				next.ServeHTTP(w, r)
				return
			}

			key := clientKey(r)
			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeRateLimited(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRateLimited writes a 429 in the same error shape the handlers use.
// This runs before the request reaches a handler, so it writes directly.
func writeRateLimited(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    string(domainerrors.CodeRateLimited),
		"message": "Too many requests. Please try again later.",
	})
}

// clientKey derives the limiter key from the request's address. The RealIP
// middleware runs earlier in the chain and has already folded any proxy
// headers into RemoteAddr, so only the port needs stripping here.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
