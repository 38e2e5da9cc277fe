package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mcoot/clubroster/internal/api"
	"github.com/mcoot/clubroster/internal/factory"
	"github.com/mcoot/clubroster/internal/seed"
	redisstorage "github.com/mcoot/clubroster/internal/storage/redis"
	"github.com/mcoot/clubroster/internal/storage/sqldb"
	"github.com/mcoot/clubroster/internal/web"
)

const sessionJanitorInterval = 10 * time.Minute

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(logger *slog.Logger) error {
	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeSQL:
		sqlCfg := sqldb.DefaultConfig()
		if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
			sqlCfg.Driver = driver
		}
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			sqlCfg.DSN = dsn
		}
		cfg.SQLConfig = &sqlCfg
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("storage close failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if envBool("SEED_DEMO", true) {
		if err := seed.Demo(ctx, app.Storage, app.AuthService, logger); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	go app.AuthService.RunJanitor(ctx, sessionJanitorInterval)

	publicSearch := envBool("PUBLIC_SEARCH", false)
	if publicSearch {
		logger.Warn("player search is open to unauthenticated clients")
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		RosterService:  app.RosterService,
		PublicSearch:   publicSearch,
		AllowedOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		RosterService: app.RosterService,
		StaticDir:     findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(mux, serverConfig, logger)

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", storageName(cfg.StorageType)),
	)

	return server.Run(ctx)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func storageName(t string) string {
	if t == "" {
		return factory.StorageTypeMemory
	}
	return t
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
