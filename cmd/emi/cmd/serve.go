package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"loan-schedule/config"
	"loan-schedule/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the loan HTTP API",
		Long: `Starts the loan HTTP API.

Configuration is read from the file given by --config (or $LOAN_CONFIG) and
then from the environment. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := root.configFile
			if path == "" {
				path = os.Getenv("LOAN_CONFIG")
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if root.verbose {
				level = "debug"
			}
			logger := server.NewLogger(level)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg, logger)
		},
	}
}
