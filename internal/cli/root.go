package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/clubroster/internal/client"
	"github.com/mcoot/clubroster/internal/session"
)

var (
	cfg       *Config
	apiClient *client.Client
	state     *session.State
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "clubroster",
		Short: "Search the club roster",
		Long: `clubroster signs in to the club roster API and searches players by name.

Run "clubroster tui" for the interactive search screen, or use the
login, search and logout commands from scripts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q: use text or json", cfg.Output)
			}

			logLevel := slog.LevelError
			if cfg.Verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

			apiClient = client.New(cfg.ServerURL, "", client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
			s, err := session.New(apiClient, session.NewFileTokenStore(cfg.TokenFile),
				session.WithToken(cfg.Token),
				session.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			state = s
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CLUBROSTER_API_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: CLUBROSTER_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: CLUBROSTER_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (env: CLUBROSTER_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newTUICmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
