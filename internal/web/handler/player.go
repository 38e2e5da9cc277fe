package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/web/middleware"
	"github.com/mcoot/clubroster/internal/web/templates/components"
	"github.com/mcoot/clubroster/internal/web/templates/layout"
	"github.com/mcoot/clubroster/internal/web/templates/pages"
)

// PlayerHandler renders the player search page and its results partial
type PlayerHandler struct {
	rosterService *roster.Service
	logger        *slog.Logger
}

// NewPlayerHandler creates a new PlayerHandler
func NewPlayerHandler(rosterService *roster.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		rosterService: rosterService,
		logger:        logger,
	}
}

// Page renders the full search page, with results when ?search= is set
func (h *PlayerHandler) Page(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	query := r.URL.Query().Get("search")

	data := pages.PlayersData{
		PageData: layout.PageData{
			Title:       "Find Players",
			DisplayName: session.Account.DisplayName,
			Flash:       middleware.GetFlash(r.Context()),
		},
		Query:   query,
		Results: h.results(r, query),
	}
	render(w, r, http.StatusOK, pages.Players(data))
}

// Results renders only the results list, for htmx swaps
func (h *PlayerHandler) Results(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	render(w, r, http.StatusOK, components.Results(h.results(r, query)))
}

// results runs the search. Short queries render an empty list without a
// lookup. Failures render as no matches.
func (h *PlayerHandler) results(r *http.Request, query string) components.ResultsData {
	if !model.QueryReady(query) {
		return components.ResultsData{}
	}

	players, err := h.rosterService.Search(r.Context(), query)
	if err != nil {
		h.logger.Warn("web search failed", slog.String("error", err.Error()))
		players = nil
	}

	data := components.ResultsData{Players: players}
	if len(players) == 0 {
		data.EmptyMessage = model.NoMatchesMessage(query)
	}
	return data
}
