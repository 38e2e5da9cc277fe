package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/clubroster/internal/session"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session token",
		Long: `Sign in with an email and password. The session token is saved to the
token file and used by later commands until you log out.

If --password is not given it is read from the first line of standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("--password is required")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := state.Login(cmd.Context(), email, password); err != nil {
				var authErr *session.AuthError
				if errors.As(err, &authErr) {
					return errors.New(authErr.Message)
				}
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(LoginResult{Status: "logged_in", Email: strings.TrimSpace(email)})
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state.Logout()
			state.Wait()

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}

			me, err := apiClient.Me(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(*me)
			return nil
		},
	}
}

func requireLogin() error {
	if state.Phase() != session.LoggedIn {
		return errors.New("not logged in -- run: clubroster login")
	}
	return nil
}
