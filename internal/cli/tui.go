package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/clubroster/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive search screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := tui.Run(cmd.Context(), state)
			state.Wait()
			return err
		},
	}
}
