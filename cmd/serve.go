package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wgomg/kwextract/internal/api"
	"github.com/wgomg/kwextract/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(global *globalFlags) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP extraction service",
		Long: `Start the HTTP extraction service.

Endpoints:
  GET  /health         Liveness check
  GET  /metrics        Prometheus metrics
  POST /extract        Extract keywords from one document
  POST /extract/batch  Extract keywords from many documents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.App.ServerPort = port
			}

			logger, res, err := setup(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("Starting keyword extraction service")
			logger.Info("Environment: %s", cfg.App.Env)
			logger.Info("Log level: %s", logger.Level())
			logger.Info("Batch workers: %d", cfg.Batch.Workers)

			patterns := utils.NewPatternCache()
			handler, err := api.NewHandler(logger, cfg, res, patterns)
			if err != nil {
				return err
			}

			timeout := time.Duration(cfg.App.HttpTimeoutSeconds) * time.Second
			server := &http.Server{
				Addr:              "0.0.0.0:" + cfg.App.ServerPort,
				Handler:           api.NewRouter(handler, logger, timeout),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       timeout,
				WriteTimeout:      timeout + 5*time.Second,
				IdleTimeout:       60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting server on port %s", cfg.App.ServerPort)
				logger.Info("Endpoints:")
				logger.Info("  GET  /health")
				logger.Info("  GET  /metrics")
				logger.Info("  POST /extract")
				logger.Info("  POST /extract/batch")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}

			logger.Info("Pattern cache: %d patterns, %.0f%% hit rate", patterns.Size(), patterns.HitRate()*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Server port to listen on (default: APP_SERVER_PORT or 8080)")

	return cmd
}
