package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
//
// Store order is ascending player ID, which is the order of the player index.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.ScanBatch <= 0 {
		cfg.ScanBatch = DefaultConfig().ScanBatch
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (model.PlayerID, error) {
	p := *player
	if p.ID == 0 {
		next, err := s.client.Incr(ctx, playerSequenceKey()).Result()
		if err != nil {
			return 0, err
		}
		p.ID = model.PlayerID(next)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(p.ID), data, 0)
	pipe.ZAdd(ctx, playerIndexKey(), redis.Z{Score: float64(p.ID), Member: p.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// SearchPlayersByName walks the player index in batches and filters by name.
// Redis has no substring index, so the match happens client side.
func (s *Storage) SearchPlayersByName(ctx context.Context, fragment string, limit int) ([]model.Player, error) {
	results := make([]model.Player, 0, limit)

	for start := int64(0); len(results) < limit; start += s.cfg.ScanBatch {
		ids, err := s.client.ZRange(ctx, playerIndexKey(), start, start+s.cfg.ScanBatch-1).Result()
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			break
		}

		keys := make([]string, len(ids))
		for i, raw := range ids {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corrupt player index entry %q: %w", raw, err)
			}
			keys[i] = playerKey(model.PlayerID(id))
		}

		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return nil, err
		}

		for _, val := range values {
			if val == nil {
				continue // Indexed but deleted
			}
			str, ok := val.(string)
			if !ok {
				continue
			}
			var p model.Player
			if err := json.Unmarshal([]byte(str), &p); err != nil {
				continue // Skip invalid data
			}
			if storage.ContainsFold(p.Name, fragment) {
				results = append(results, p)
				if len(results) >= limit {
					break
				}
			}
		}
	}

	return results, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	a := *account
	a.Email = storage.NormalizeEmail(a.Email)
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, accountKey(a.Email), data, 0).Err()
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(storage.NormalizeEmail(email))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.Token), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// DeleteExpiredSessions is a no-op: session keys carry a TTL
func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}
