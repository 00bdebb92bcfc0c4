package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/logging"
	"github.com/rgehrsitz/nestegg/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the projection HTTP API",
	Long: `Serve the projection engine over HTTP. Settings come from the environment,
optionally loaded from an env file:

  NESTEGG_ADDR             listen address (default :8080)
  NESTEGG_READ_TIMEOUT     request read timeout (default 10s)
  NESTEGG_WRITE_TIMEOUT    response write timeout (default 10s)
  NESTEGG_MAX_BODY_BYTES   largest accepted request body (default 1048576)
  NESTEGG_DEBUG            debug logging (default false)

Endpoints: GET /healthz, POST /v1/project, /v1/coast, /v1/stop-age, /v1/stress, /v1/report`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.LoadServerConfig(envFile)
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.Addr = addr
		}
		cfg.Debug = cfg.Debug || debugMode

		// The server always logs requests; --log-json switches the encoding
		logger := logging.Setup(logging.Config{Writer: cmd.ErrOrStderr(), Debug: cfg.Debug, JSON: jsonLogs})

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, newEngine(), logger)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("env-file", ".env", "Env file to load before reading NESTEGG_* variables")
	serveCmd.Flags().String("addr", "", "Listen address, overrides NESTEGG_ADDR")

	rootCmd.AddCommand(serveCmd)
}
