// Package middleware provides the HTTP middleware chain: session auth,
// request logging, and Prometheus metrics.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vaibhavdeo21/mergemoney/internal/auth"
	"github.com/vaibhavdeo21/mergemoney/internal/models"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session
// token. A Bearer Authorization header is accepted as a fallback for
// non-browser clients.
const SessionCookie = "mm_session"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const userKey contextKey = "user"

// UserLoader resolves a validated token's subject to a full user record, so
// handlers see current roles rather than whatever was true at login.
type UserLoader interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// GetUser extracts the authenticated user from the context.
// Returns nil if the request was not authenticated.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// RequireAuth returns middleware that validates the session token and loads
// the user into the request context. Requests without a valid session get a
// 401.
func RequireAuth(jwtManager *auth.JWTManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			user, err := users.GetUserByEmail(r.Context(), claims.Email)
			if err != nil {
				// Token is valid but the account is gone (deleted by an admin).
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the session token from the Authorization header or the
// session cookie, in that order.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + err.Error() + `"}`))
}
