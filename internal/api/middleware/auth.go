// Package middleware provides the HTTP middleware chain: request
// authentication, route-level authorization, trace IDs, and CORS.
package middleware

import (
	"errors"
	"net/http"

	"github.com/pollinate/task-api/internal/api/shared"
	"github.com/pollinate/task-api/internal/platform/logger"
	"github.com/pollinate/task-api/internal/service/auth"
)

// AuthMiddleware authenticates requests from the session cookie.
type AuthMiddleware struct {
	jwtService auth.JWTService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware reading tokens from the
// cookie with the given name.
func NewAuthMiddleware(jwtService auth.JWTService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		cookieName: cookieName,
	}
}

// Authenticate extracts the token from the session cookie, validates it, and
// binds the subject username to the request context. A missing or invalid
// token does not fail the request here; the request simply proceeds
// unauthenticated and route-level authorization (RequireAuth) produces the
// 401. This keeps public routes usable with or without a stale cookie.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, auth.ErrExpiredToken) && !errors.Is(err, auth.ErrInvalidToken) {
				logger.FromContext(r.Context()).
					Warn("unexpected token validation failure", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := shared.WithUsername(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that reach it without a bound identity.
// Apply after Authenticate on every protected route group.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.UsernameFromContext(r.Context()); !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
