// Package pages holds the full pages served by the web frontend.
package pages

import (
	"github.com/mcoot/clubroster/internal/web/templates/components"
	"github.com/mcoot/clubroster/internal/web/templates/layout"
)

// LoginData feeds the sign-in page
type LoginData struct {
	layout.PageData
	Email string // re-filled after a failed attempt
	Error string
	Next  string // page to return to after sign-in
}

// PlayersData feeds the player search page
type PlayersData struct {
	layout.PageData
	Query   string
	Results components.ResultsData
}
