package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/web/middleware"
	"github.com/mcoot/clubroster/internal/web/templates/layout"
	"github.com/mcoot/clubroster/internal/web/templates/pages"
)

// AuthHandler handles the sign-in page and actions
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		// Already signed in
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: layout.PageData{
			Title: "Sign In",
			Flash: middleware.GetFlash(r.Context()),
		},
		Next: r.URL.Query().Get("next"),
	}
	render(w, r, http.StatusOK, pages.Login(data))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, http.StatusBadRequest, "Invalid form data", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderLoginError(w, r, http.StatusBadRequest, "Email and password are required", email)
		return
	}

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
			h.renderLoginError(w, r, http.StatusInternalServerError, "Login failed", email)
			return
		}
		h.renderLoginError(w, r, http.StatusUnauthorized, "Invalid email or password", email)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.SetFlash(w, "success", "Welcome back, "+session.Account.DisplayName+"!")
	http.Redirect(w, r, safeNext(r.FormValue("next")), http.StatusSeeOther)
}

// Logout ends the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("session revoke failed", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been signed out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, status int, msg, email string) {
	data := pages.LoginData{
		PageData: layout.PageData{Title: "Sign In"},
		Email:    email,
		Error:    msg,
		Next:     r.FormValue("next"),
	}
	render(w, r, status, pages.Login(data))
}

// safeNext keeps post-login redirects on this site
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/players"
}
