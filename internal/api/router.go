package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mcoot/clubroster/internal/api/handler"
	"github.com/mcoot/clubroster/internal/api/middleware"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	RosterService *roster.Service
	// PublicSearch serves /api/players without a session token
	PublicSearch bool
	// AllowedOrigins lists CORS origins; empty allows any origin
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the API routes under /api on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.RosterService, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(cors(cfg.AllowedOrigins))

	// Public routes
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Search, protected unless configured public. CORS answers preflight first.
	search := api.PathPrefix("/players").Subrouter()
	if cfg.PublicSearch {
		search.Use(middleware.OptionalAuth(cfg.AuthService))
	} else {
		search.Use(authMiddleware)
	}
	search.HandleFunc("", playerHandler.Search).Methods(http.MethodGet, http.MethodOptions)

	// Protected account routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet, http.MethodOptions)
}

func cors(origins []string) mux.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return mux.MiddlewareFunc(handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	))
}
