package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vrmarket/vrmarket/internal/logging"
	"github.com/vrmarket/vrmarket/internal/replica"
)

func main() {
	addr := flag.String("a", "127.0.0.1:4943", "listen address")
	seed := flag.Bool("seed", true, "load demo assets on startup")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := replica.NewStore()
	if *seed {
		replica.Seed(store)
	}

	registry := prometheus.NewRegistry()
	metrics := replica.NewMetrics(registry)
	limiter := replica.NewRateLimiter(replica.DefaultRateLimiterConfig())
	defer limiter.Stop()

	srv := replica.NewServer(store, logger, metrics, limiter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", replica.MetricsHandler(registry))
	mux.Handle("/", srv.Handler())

	httpSrv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "shutdown failed", "error", err)
		}
	}()

	logger.Info(ctx, "replica listening", "addr", *addr, "seeded", *seed)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server failed", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "replica stopped")
}
