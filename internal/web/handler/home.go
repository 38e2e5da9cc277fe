package handler

import (
	"net/http"

	"github.com/mcoot/clubroster/internal/web/middleware"
)

// HomeHandler sends visitors to the right starting page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home redirects to player search when signed in, otherwise to the login page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/players", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
