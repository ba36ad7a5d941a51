package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/botlab-edu/botlab"
	"github.com/botlab-edu/botlab/internal/adapters/httpapi"
	"github.com/botlab-edu/botlab/internal/logging"
	"github.com/botlab-edu/botlab/internal/metrics"
)

// serveCmd exposes the editing and run-control surface over HTTP for
// graphical hosts, streaming pose frames to renderers over a websocket.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server for graphical hosts",
	Long: `Starts the botlab engine behind a JSON API. Editing and run control go
through /api, renderers subscribe to /ws for pose, path and run-state frames,
and Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")

		logger := logging.New(slog.LevelInfo)

		hub := httpapi.NewHub(logger)
		collector := metrics.NewCollector(prometheus.DefaultRegisterer)

		sim := botlab.New(
			botlab.WithCellSize(cfg.CellSize),
			botlab.WithStepDelay(cfg.StepDelay),
			botlab.WithStartDelay(cfg.StartDelay),
			botlab.WithOrigin(cfg.Origin()),
			botlab.WithHooks(hub.Hooks().Merge(collector.Hooks())),
			botlab.WithLogger(logger),
		)

		server := httpapi.NewServer(sim.Controller(), hub, logger)
		srv := &http.Server{
			Addr:    addr,
			Handler: server.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			sim.Stop()
			sim.Wait()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8423", "Listen address")
}
