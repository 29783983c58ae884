package api

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/terra-clan/talent-tracker/internal/auth"
)

// TokenVerifier turns an identity-provider access token into a caller
type TokenVerifier interface {
	Verify(token string) (auth.Caller, error)
}

// AuthMiddleware handles bearer token authentication
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates new auth middleware
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Identify verifies the bearer token when one is present and stores the caller
// in the request context. Missing or invalid tokens leave the request
// anonymous; it never rejects.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearer(r)
		if token == "" || m.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		caller, err := m.verifier.Verify(token)
		if err != nil {
			slog.Warn("rejected access token", "error", err, "remote_addr", r.RemoteAddr)
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.ContextWithCaller(r.Context(), caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCaller rejects anonymous requests with 401
func (m *AuthMiddleware) RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !callerFrom(r).Authenticated() {
			writeAuthError(w, http.StatusUnauthorized, "not authenticated", "provide a valid Authorization: Bearer access token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware applies the coach limiter, keyed by user when known and
// by client address otherwise. Limiter failures let the request through.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		host := r.RemoteAddr
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		key := "ip:" + host
		if caller := callerFrom(r); caller.Authenticated() {
			key = "user:" + caller.UserID.String()
		}

		info, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			slog.Error("rate limiter unavailable", "error", err, "key", key)
			next.ServeHTTP(w, r)
			return
		}

		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}

		if !info.Allowed {
			seconds := int(info.RetryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			slog.Warn("coach rate limit exceeded", "key", key, "limit", info.Limit)
			respondCoachError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractBearer extracts the token from "Authorization: Bearer <token>"
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// AuthError represents an authentication error response
type AuthError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeAuthError writes JSON error response
func writeAuthError(w http.ResponseWriter, status int, error, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(AuthError{
		Error:   error,
		Message: message,
	})
}
