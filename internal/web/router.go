package web

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path ./templates

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/web/handler"
	"github.com/mcoot/clubroster/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	RosterService *roster.Service
	StaticDir     string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Mount(r, cfg)
	return r
}

// Mount registers the web routes on an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.RosterService, cfg.Logger)

	site := r.NewRoute().Subrouter()
	site.Use(recoveryMiddleware)
	site.Use(loggingMiddleware)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		site.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes
	public := site.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Protected routes (require auth)
	protected := site.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/players", playerHandler.Page).Methods(http.MethodGet)
	protected.HandleFunc("/players/results", playerHandler.Results).Methods(http.MethodGet)
}
