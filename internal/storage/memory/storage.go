package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[model.PlayerID]*model.Player
	playerOrder []model.PlayerID // insertion order, which is this backend's store order
	nextID      model.PlayerID
	accounts    map[string]*model.Account
	sessions    map[string]*model.Session
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:  make(map[model.PlayerID]*model.Player),
		nextID:   1,
		accounts: make(map[string]*model.Account),
		sessions: make(map[string]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (model.PlayerID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *player
	if p.ID == 0 {
		p.ID = s.nextID
	}
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	if _, exists := s.players[p.ID]; !exists {
		s.playerOrder = append(s.playerOrder, p.ID)
	}
	s.players[p.ID] = &p
	return p.ID, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) SearchPlayersByName(ctx context.Context, fragment string, limit int) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]model.Player, 0, limit)
	for _, id := range s.playerOrder {
		if len(results) >= limit {
			break
		}
		p := s.players[id]
		if storage.ContainsFold(p.Name, fragment) {
			results = append(results, *p)
		}
	}
	return results, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *account
	a.Email = storage.NormalizeEmail(a.Email)
	s.accounts[a.Email] = &a
	return nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[storage.NormalizeEmail(email)]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	a := *account
	return &a, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[sess.Token] = &sess
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op for the in-memory backend
func (s *Storage) Close() error {
	return nil
}
