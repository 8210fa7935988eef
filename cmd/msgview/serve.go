package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/welldanyogia/webrana-msgview/internal/api"
	"github.com/welldanyogia/webrana-msgview/internal/api/middleware"
)

const (
	shutdownTimeout = 10 * time.Second
	evictInterval   = time.Minute
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve message views over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			defer a.close()

			limiter := middleware.NewIPRateLimiter(a.cfg.RateLimitRequests, a.cfg.RateLimitBurst)
			go evictVisitors(ctx, limiter)

			e := api.NewRouter(&api.RouterConfig{
				DB:          a.db,
				Redis:       a.rdb,
				Views:       a.views,
				Metrics:     a.metrics,
				Logger:      a.logger,
				APIKey:      a.cfg.APIKey,
				RateLimiter: limiter,
			})

			addr := fmt.Sprintf(":%d", a.cfg.APIPort)
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Starting HTTP server", slog.String("addr", addr))
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server failed: %w", err)
				}
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			a.logger.Info("Server stopped")
			return nil
		},
	}
}

func evictVisitors(ctx context.Context, limiter *middleware.IPRateLimiter) {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := limiter.Evict()
			slog.Debug("rate limiter visitors evicted", slog.Int("remaining", n))
		}
	}
}
