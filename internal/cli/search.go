package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/clubroster/internal/session"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search players by name",
		Long: `Search the roster for players whose name contains the given text,
ignoring case. At most 10 players are shown. Queries shorter than two
characters return nothing without contacting the server.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			d, ok := state.SetQuery(query)
			if !ok {
				out := NewOutput(cfg.Output, cmd.OutOrStdout())
				out.Print(SearchResult{Query: query})
				return nil
			}

			players, err := state.Fetch(cmd.Context(), d)
			state.Resolve(d, players, err)

			snap := state.Snapshot()
			if snap.Phase == session.LoggedOut {
				return errors.New(snap.AuthMessage)
			}
			if err != nil {
				return errors.New("search failed, try again")
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(SearchResult{
				Query:        query,
				Players:      snap.Results,
				EmptyMessage: snap.EmptyMessage,
			})
			return nil
		},
	}
}
