package model

import (
	"fmt"
	"unicode/utf8"
)

// MinQueryLength is the shortest query, in characters, that a client sends
// to the roster. Shorter queries show an empty list.
const MinQueryLength = 2

// QueryReady reports whether q is long enough to search
func QueryReady(q string) bool {
	return utf8.RuneCountInString(q) >= MinQueryLength
}

// NoMatchesMessage is the text shown when a search for q found nobody
func NoMatchesMessage(q string) string {
	return fmt.Sprintf("No players found matching \"%s\"", q)
}
