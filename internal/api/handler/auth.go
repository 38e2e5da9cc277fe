package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/api/middleware"
	"github.com/mcoot/clubroster/internal/api/request"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/services/auth"
)

// AuthHandler handles login, logout and account endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LoginResponse{Token: session.Token})
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	if err := h.authService.Logout(r.Context(), session.Token); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetMe handles GET /api/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.MeFromSession(session))
}
