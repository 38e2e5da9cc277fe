package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

const (
	// MaxResults caps every search response
	MaxResults = 10
	// MaxQueryLength is the longest accepted query, in runes
	MaxQueryLength = 100
)

// Errors
var (
	ErrBadQuery         = errors.New("malformed search query")
	ErrStoreUnavailable = errors.New("player store unavailable")
)

// Service answers name searches over the club roster
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a roster Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{storage: storage, logger: logger}
}

// Search returns up to MaxResults players whose name contains query, ignoring
// case. Wildcard characters in query match literally. An empty query matches
// every player. Results are in store order.
func (s *Service) Search(ctx context.Context, query string) ([]model.Player, error) {
	if !utf8.ValidString(query) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrBadQuery)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrBadQuery, MaxQueryLength)
	}

	players, err := s.storage.SearchPlayersByName(ctx, query, MaxResults)
	if err != nil {
		s.logger.Error("player search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if len(players) > MaxResults {
		players = players[:MaxResults]
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}
