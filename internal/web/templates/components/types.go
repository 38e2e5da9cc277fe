// Package components holds page fragments that htmx swaps in place.
package components

import "github.com/mcoot/clubroster/internal/model"

// ResultsData feeds the #results fragment
type ResultsData struct {
	Players      []model.Player
	EmptyMessage string // shown only when Players is empty
}
