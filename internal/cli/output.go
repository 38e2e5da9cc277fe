package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/clubroster/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// LoginResult is printed after a successful login
type LoginResult struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// SearchResult is printed after a roster search
type SearchResult struct {
	Query        string
	Players      []response.Player
	EmptyMessage string
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	// Search results go out as a bare array, the same shape the API returns.
	if sr, ok := data.(SearchResult); ok {
		players := sr.Players
		if players == nil {
			players = []response.Player{}
		}
		data = players
	}
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		fmt.Fprintf(o.w, "Logged in as %s\n", v.Email)
	case SearchResult:
		o.printSearchResult(v)
	case response.Me:
		fmt.Fprintf(o.w, "Signed in as %s (%s)\n", v.DisplayName, v.Email)
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printSearchResult(sr SearchResult) {
	if len(sr.Players) == 0 {
		if sr.EmptyMessage != "" {
			fmt.Fprintln(o.w, sr.EmptyMessage)
		} else {
			fmt.Fprintln(o.w, "Type at least 2 characters to search.")
		}
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tDUPR")
	for _, p := range sr.Players {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Email, p.RatingLabel())
	}
	_ = tw.Flush()
}
