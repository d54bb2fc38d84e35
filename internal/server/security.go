package server

import (
	"net/http"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
	"github.com/agbru/puzzlebook/internal/puzzle"
)

// SecurityConfig holds the HTTP hardening settings and the limits applied
// to request parameters.
type SecurityConfig struct {
	// EnableCORS turns on the Access-Control-* response headers.
	EnableCORS bool
	// AllowedOrigins lists the accepted Origin values; "*" accepts any.
	AllowedOrigins []string
	// AllowedMethods is advertised in Access-Control-Allow-Methods.
	AllowedMethods []string
	// MaxBound is the largest bound a request may ask for.
	MaxBound int64
	// MaxDivisors is the largest number of divisors a request may pass.
	MaxDivisors int
	// RequestTimeout bounds the computation of a single request.
	RequestTimeout time.Duration
}

// DefaultSecurityConfig returns a permissive CORS policy for a read-only
// API, with limits that keep every solver fast.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxBound:       1_000_000_000_000,
		MaxDivisors:    8,
		RequestTimeout: 10 * time.Second,
	}
}

// CheckParams rejects params beyond the configured limits.
func (c SecurityConfig) CheckParams(p puzzle.Params) error {
	if c.MaxBound > 0 && p.Bound > c.MaxBound {
		return apperrors.NewValidationError("bound", "bound %d exceeds the limit of %d", p.Bound, c.MaxBound)
	}
	if c.MaxDivisors > 0 && len(p.Divisors) > c.MaxDivisors {
		return apperrors.NewValidationError("divisors", "at most %d divisors are accepted, got %d", c.MaxDivisors, len(p.Divisors))
	}
	return nil
}

// SecurityMiddleware sets the security headers, applies the CORS policy
// and answers preflight requests.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				h.Set("Access-Control-Max-Age", "86400")
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin.
func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin != "" && slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}
