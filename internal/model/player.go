package model

import (
	"math"
	"math/big"
	"strconv"
	"time"
)

// PlayerID uniquely identifies a row in the club roster. IDs are never reused.
type PlayerID int64

// String returns the decimal form of the ID
func (id PlayerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Player is a club member as held by the player store
type Player struct {
	ID         PlayerID `db:"id"`
	Name       string   `db:"name"`
	Email      string   `db:"email"`
	DUPRRating float64  `db:"dupr_rating"`
}

// RatingLabel renders the DUPR rating to one decimal place
func (p Player) RatingLabel() string {
	return FormatRating(p.DUPRRating)
}

// FormatRating renders a rating to one decimal place. Exact halves round
// away from zero, so 4.25 reads "4.3".
func FormatRating(r float64) string {
	exact := new(big.Rat)
	if math.IsNaN(r) || math.IsInf(r, 0) || exact.SetFloat64(r) == nil {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	exact.Mul(exact, big.NewRat(10, 1))
	if exact.Denom().Cmp(big.NewInt(2)) == 0 {
		if r < 0 {
			return strconv.FormatFloat(math.Floor(r*10)/10, 'f', 1, 64)
		}
		return strconv.FormatFloat(math.Ceil(r*10)/10, 'f', 1, 64)
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// Account is a login identity allowed to use the roster
type Account struct {
	Email        string    `db:"email"`         // login key, stored lower-cased
	PasswordHash string    `db:"password_hash"` // bcrypt hash
	DisplayName  string    `db:"display_name"`
	CreatedAt    time.Time `db:"created_at"`
}
