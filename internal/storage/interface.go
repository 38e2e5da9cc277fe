package storage

import (
	"context"
	"time"

	"github.com/mcoot/clubroster/internal/model"
)

// Storage defines the interface for data persistence
//
// SearchPlayersByName returns players in store order. No sort is applied, so
// backends may return ties in any order they like; callers must not rely on a
// particular ordering beyond "whatever the backend yields".
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) (model.PlayerID, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	SearchPlayersByName(ctx context.Context, fragment string, limit int) ([]model.Player, error)

	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)

	// Close releases any held connections
	Close() error
}
