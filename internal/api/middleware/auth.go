package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth rejects requests without a valid bearer token
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// OptionalAuth attaches the session when a valid token is present but lets
// anonymous requests through
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if session, err := authService.ValidateSession(r.Context(), token); err == nil {
					r = r.WithContext(WithSession(r.Context(), session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken returns the bearer token from the Authorization header
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// WithSession stores the session on the context
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *auth.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
