package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/api/middleware"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// PlayerHandler handles roster search
type PlayerHandler struct {
	rosterService *roster.Service
	logger        *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(rosterService *roster.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		rosterService: rosterService,
		logger:        logger,
	}
}

// Search handles GET /api/players?search=
// The session is optional when search is public; the query itself is never logged.
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	players, err := h.rosterService.Search(r.Context(), query)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	account := "anonymous"
	if session := middleware.GetSession(r.Context()); session != nil {
		account = session.Account.Email
	}
	h.logger.LogAttrs(r.Context(), slog.LevelDebug, "player search",
		slog.String("account", account),
		slog.Int("results", len(players)),
	)

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}
