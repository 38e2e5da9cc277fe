package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/client"
	"github.com/mcoot/clubroster/internal/model"
)

var errEmptyToken = errors.New("server returned an empty token")

// revokeTimeout bounds the best-effort server logout
const revokeTimeout = 5 * time.Second

// Phase is the authentication phase of a State
type Phase int

const (
	LoggedOut Phase = iota
	LoggedIn
)

func (p Phase) String() string {
	if p == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// API is the part of the roster API a State drives
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Revoke(ctx context.Context, token string) error
	SearchPlayers(ctx context.Context, query string) ([]response.Player, error)
	SetToken(token string)
}

var _ API = (*client.Client)(nil)

// Dispatch is one search the caller must run and hand back to Resolve
type Dispatch struct {
	Gen   uint64
	Query string
}

// Snapshot is a consistent copy of the state for rendering
type Snapshot struct {
	Phase        Phase
	AuthMessage  string
	Query        string
	Results      []response.Player
	Loading      bool
	EmptyMessage string
}

// State is the client side of the application: the login state machine plus
// the live query state. It is safe for concurrent use.
type State struct {
	api    API
	tokens TokenStore
	logger *slog.Logger

	mu          sync.Mutex
	phase       Phase
	token       string
	authMessage string

	query   string
	results []response.Player
	loading bool
	gen     uint64
	settled bool

	background sync.WaitGroup
}

// Option configures a State
type Option func(*State)

// WithLogger sets the logger used for failures that are not shown to the user
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) { s.logger = logger }
}

// WithToken starts from token instead of the persisted one. Empty is ignored.
func WithToken(token string) Option {
	return func(s *State) {
		if token != "" {
			s.token = token
		}
	}
}

// New builds a State. A persisted token means the state starts LoggedIn; the
// token is not checked with the server until the first search.
func New(api API, tokens TokenStore, opts ...Option) (*State, error) {
	s := &State{
		api:    api,
		tokens: tokens,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.token == "" {
		token, err := tokens.Load()
		if err != nil {
			return nil, fmt.Errorf("load token: %w", err)
		}
		s.token = token
	}

	if s.token != "" {
		s.phase = LoggedIn
		api.SetToken(s.token)
	}
	return s, nil
}

// Login exchanges credentials for a token and persists it. Failures return an
// *AuthError and leave any saved token untouched.
func (s *State) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err == nil && token == "" {
		err = errEmptyToken
	}
	if err != nil {
		authErr := classifyLoginError(err)
		s.mu.Lock()
		s.authMessage = authErr.Message
		s.mu.Unlock()
		return authErr
	}

	if err := s.tokens.Save(token); err != nil {
		s.mu.Lock()
		s.authMessage = "Could not save session."
		s.mu.Unlock()
		return fmt.Errorf("save token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = LoggedIn
	s.token = token
	s.authMessage = ""
	s.resetQueryLocked()
	s.api.SetToken(token)
	return nil
}

func classifyLoginError(err error) *AuthError {
	switch {
	case errors.As(err, new(*client.HTTPError)):
		msg, ok := client.ServerMessage(err)
		if !ok {
			msg = MessageLoginFailed
		}
		return &AuthError{Kind: InvalidCredentials, Message: msg, Err: err}
	case errors.Is(err, errEmptyToken):
		return &AuthError{Kind: InvalidCredentials, Message: MessageLoginFailed, Err: err}
	default:
		return &AuthError{Kind: NetworkUnreachable, Message: MessageUnreachable, Err: err}
	}
}

// Logout forgets the session locally and clears all query state. The server
// is asked to revoke the token in the background; Wait blocks until it has
// answered or timed out.
func (s *State) Logout() {
	s.mu.Lock()
	token := s.token
	s.logoutLocked("")
	s.mu.Unlock()

	if token == "" {
		return
	}
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), revokeTimeout)
		defer cancel()
		if err := s.api.Revoke(ctx, token); err != nil {
			s.logger.Warn("server logout failed", slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until background work started by Logout has finished
func (s *State) Wait() {
	s.background.Wait()
}

func (s *State) logoutLocked(message string) {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("clear token failed", slog.String("error", err.Error()))
	}
	s.phase = LoggedOut
	s.token = ""
	s.authMessage = message
	s.resetQueryLocked()
	s.api.SetToken("")
}

func (s *State) resetQueryLocked() {
	s.gen++
	s.query = ""
	s.results = nil
	s.loading = false
	s.settled = false
}

// SetQuery records a query change. Queries shorter than model.MinQueryLength clear
// the results at once and return false. Longer queries mark the state loading
// and return the Dispatch to run. Any search still in flight becomes stale.
func (s *State) SetQuery(q string) (Dispatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.query = q
	s.settled = false

	if s.phase != LoggedIn || !model.QueryReady(q) {
		s.results = nil
		s.loading = false
		return Dispatch{}, false
	}

	s.loading = true
	return Dispatch{Gen: s.gen, Query: q}, true
}

// Fetch runs the search for d without touching the state
func (s *State) Fetch(ctx context.Context, d Dispatch) ([]response.Player, error) {
	return s.api.SearchPlayers(ctx, d.Query)
}

// Resolve applies the outcome of d. It returns false and changes nothing when
// a newer query has been set since d was dispatched. Failures show as an empty
// list; a 401 ends the session.
func (s *State) Resolve(d Dispatch, players []response.Player, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.Gen != s.gen || s.phase != LoggedIn {
		return false
	}

	s.loading = false
	s.settled = true

	if err != nil {
		s.results = nil
		if client.IsStatus(err, http.StatusUnauthorized) {
			s.logger.Info("session rejected by server")
			s.logoutLocked(MessageSessionExpired)
			return true
		}
		s.logger.Error("search failed", slog.String("query", d.Query), slog.String("error", err.Error()))
		return true
	}

	s.results = append([]response.Player(nil), players...)
	return true
}

// Search sets the query and, when it qualifies, runs it synchronously
func (s *State) Search(ctx context.Context, q string) Snapshot {
	if d, ok := s.SetQuery(q); ok {
		players, err := s.Fetch(ctx, d)
		s.Resolve(d, players, err)
	}
	return s.Snapshot()
}

// EmptyMessage is the text shown when a settled query found nobody
func (s *State) EmptyMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emptyMessageLocked()
}

func (s *State) emptyMessageLocked() string {
	if !s.settled || s.loading || len(s.results) > 0 || !model.QueryReady(s.query) {
		return ""
	}
	return model.NoMatchesMessage(s.query)
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:        s.phase,
		AuthMessage:  s.authMessage,
		Query:        s.query,
		Results:      append([]response.Player(nil), s.results...),
		Loading:      s.loading,
		EmptyMessage: s.emptyMessageLocked(),
	}
}

// Phase returns the current authentication phase
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Token returns the current token, empty when logged out
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
