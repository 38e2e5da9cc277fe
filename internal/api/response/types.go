package response

import (
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/auth"
)

// LoginResponse is returned by POST /api/login
type LoginResponse struct {
	Token string `json:"token"`
}

// Player is the wire form of a roster entry
type Player struct {
	ID         model.PlayerID `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	DUPRRating float64        `json:"dupr_rating"`
}

// RatingLabel renders the DUPR rating to one decimal place
func (p Player) RatingLabel() string {
	return model.FormatRating(p.DUPRRating)
}

// Me describes the signed-in account
type Me struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Health is returned by GET /api/health
type Health struct {
	Status string `json:"status"`
}

// PlayerFromModel converts a model.Player to the wire form
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		DUPRRating: p.DUPRRating,
	}
}

// PlayersFromModel converts search results, always yielding a JSON array
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return out
}

// MeFromSession describes the account behind a session
func MeFromSession(session *auth.Session) Me {
	return Me{
		Email:       session.Account.Email,
		DisplayName: session.Account.DisplayName,
	}
}
