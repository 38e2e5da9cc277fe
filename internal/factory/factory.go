package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/clubroster/internal/dependencies/clock"
	"github.com/mcoot/clubroster/internal/dependencies/random"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/storage"
	"github.com/mcoot/clubroster/internal/storage/memory"
	redisstorage "github.com/mcoot/clubroster/internal/storage/redis"
	"github.com/mcoot/clubroster/internal/storage/sqldb"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQL    = "sql"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService   *auth.Service
	RosterService *roster.Service

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sql" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLConfig holds database settings (required if StorageType is "sql")
	SQLConfig *sqldb.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), authCfg, logger), nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeSQL:
		if cfg.SQLConfig == nil {
			return nil, errors.New("SQLConfig required when StorageType is sql")
		}
		store, err := sqldb.New(*cfg.SQLConfig)
		if err != nil {
			return nil, fmt.Errorf("open sql storage: %w", err)
		}
		return store, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'sql' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		AuthService:   auth.New(store, clk, rnd, authCfg, logger),
		RosterService: roster.New(store, logger),
		Logger:        logger,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
