package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/clubroster/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"

	// SessionCookieName carries the session token for the web interface
	SessionCookieName = "session"
)

// GetSession retrieves the authenticated session from the request context
// Returns nil if no account is signed in
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// Auth returns middleware that requires a signed-in account
// Redirects to the login page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromCookie(r, authService)
			if session == nil {
				// htmx follows redirects into the swap target, so ask it to reload instead
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/login")
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromCookie(r, authService)
			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromCookie(r *http.Request, authService *auth.Service) *auth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authService.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return session
}
