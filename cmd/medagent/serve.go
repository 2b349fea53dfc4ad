package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sandevgo/medagent/pkg/log"
	"github.com/sandevgo/medagent/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MedAgent web server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ctx, cleanup := setupLogger(ctx)
		defer cleanup()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting medagent")

		services := NewServices(ctx)
		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("medagent stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
