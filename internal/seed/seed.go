package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/storage"
)

// Demo login
const (
	DemoEmail       = "admin@club.com"
	DemoPassword    = "password123"
	DemoDisplayName = "Club Admin"
)

// DemoPlayers is the roster loaded by Demo. IDs are fixed so reseeding
// overwrites rather than duplicates.
var DemoPlayers = []model.Player{
	{ID: 1, Name: "John Smith", Email: "john.smith@club.com", DUPRRating: 3.5},
	{ID: 2, Name: "Johnny Lee", Email: "johnny.lee@club.com", DUPRRating: 4.1},
	{ID: 3, Name: "Amy Jones", Email: "amy.jones@club.com", DUPRRating: 3.8},
	{ID: 4, Name: "Maria Garcia", Email: "maria.garcia@club.com", DUPRRating: 4.6},
	{ID: 5, Name: "David Chen", Email: "david.chen@club.com", DUPRRating: 3.2},
	{ID: 6, Name: "Sarah O'Brien", Email: "sarah.obrien@club.com", DUPRRating: 4.25},
	{ID: 7, Name: "Mike Johnson", Email: "mike.johnson@club.com", DUPRRating: 2.9},
	{ID: 8, Name: "Priya Patel", Email: "priya.patel@club.com", DUPRRating: 5.0},
	{ID: 9, Name: "Tom Nguyen", Email: "tom.nguyen@club.com", DUPRRating: 3.65},
	{ID: 10, Name: "Lisa Park", Email: "lisa.park@club.com", DUPRRating: 4.4},
	{ID: 11, Name: "Carlos Rivera", Email: "carlos.rivera@club.com", DUPRRating: 3.1},
	{ID: 12, Name: "Emma Wilson", Email: "emma.wilson@club.com", DUPRRating: 4.0},
}

// Demo loads the demo account and roster. Running it again is harmless.
func Demo(ctx context.Context, store storage.Storage, authService *auth.Service, logger *slog.Logger) error {
	_, err := authService.RegisterAccount(ctx, DemoEmail, DemoPassword, DemoDisplayName)
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		logger.Debug("demo account already present", slog.String("email", DemoEmail))
	case err != nil:
		return fmt.Errorf("seed demo account: %w", err)
	}

	for i := range DemoPlayers {
		if _, err := store.SavePlayer(ctx, &DemoPlayers[i]); err != nil {
			return fmt.Errorf("seed player %q: %w", DemoPlayers[i].Name, err)
		}
	}

	logger.Info("demo data loaded", slog.Int("players", len(DemoPlayers)))
	return nil
}
