package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubroster/internal/dependencies/clock"
	"github.com/mcoot/clubroster/internal/dependencies/random"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrEmailExists        = errors.New("email already registered")
)

const (
	tokenPrefix   = "sess_"
	tokenLength   = 32
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

// Session represents an authenticated session
type Session struct {
	Token     string
	Account   model.Account
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	sessionDuration time.Duration
	bcryptCost      int
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// BcryptCost is the hashing cost for new accounts. Zero means bcrypt.DefaultCost.
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		random:          random,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cfg.BcryptCost,
	}
}

// RegisterAccount creates a login account
func (s *Service) RegisterAccount(ctx context.Context, email, password, displayName string) (*model.Account, error) {
	email = storage.NormalizeEmail(email)

	_, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", slog.String("email", email))
	return account, nil
}

// Login authenticates an account and creates a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, account)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	stored, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if stored.Expired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	account, err := s.storage.GetAccountByEmail(ctx, stored.Email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return &Session{
		Token:     stored.Token,
		Account:   *account,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Logout removes a session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.storage.DeleteSession(ctx, token)
}

// createSession creates a new session for an account
func (s *Service) createSession(ctx context.Context, account *model.Account) (*Session, error) {
	now := s.clock.Now()
	session := &Session{
		Token:     tokenPrefix + s.random.String(tokenLength, tokenAlphabet),
		Account:   *account,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	err := s.storage.SaveSession(ctx, &model.Session{
		Token:     session.Token,
		Email:     account.Email,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions(ctx context.Context) (int, error) {
	removed, err := s.storage.DeleteExpiredSessions(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("expired sessions removed", slog.Int("count", removed))
	}
	return removed, nil
}

// RunJanitor calls CleanExpiredSessions every interval until ctx is done
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CleanExpiredSessions(ctx); err != nil {
				s.logger.Error("session cleanup failed", slog.String("error", err.Error()))
			}
		}
	}
}
