package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/tphummel/it_inventory/internal/config"
	"github.com/tphummel/it_inventory/internal/handlers"
	"github.com/tphummel/it_inventory/internal/inventory"
	"github.com/tphummel/it_inventory/internal/kv"
	"github.com/tphummel/it_inventory/internal/metrics"
	"github.com/tphummel/it_inventory/internal/middleware"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

// loadConfig reads .env if present, then the YAML file named by CONFIG_PATH,
// then environment overrides.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newHandler wires the inventory, API routes, metrics, rate limiting, and
// request logging into one handler.
func newHandler(cfg *config.Config, store kv.Store, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	inv := inventory.Open(store, logger)
	metrics.Register(reg, inv)

	h := &handlers.Handler{
		Inv:     inv,
		Store:   store,
		Deletes: handlers.NewPendingDeletes(cfg.Server.DeleteConfirmTTL()),
		Logger:  logger,
		Version: version,
		Commit:  commit,
	}

	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("GET /metrics", metrics.Handler(reg))

	var limiter *middleware.IPRateLimiter
	if cfg.Server.RateLimitPerSec > 0 {
		limiter = middleware.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst, middleware.DefaultIdleTTL)
	}

	root := http.NewServeMux()
	root.Handle("/api/", middleware.RateLimit(limiter, mux))
	root.Handle("/", mux)

	return middleware.RequestLogger(logger, middleware.SkipPaths("/healthz", "/metrics"), root)
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := kv.Open(openCtx, cfg.Storage)
	cancelOpen()
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.Storage.Driver, err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           newHandler(cfg, store, logger, prometheus.NewRegistry()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("listening",
			"port", cfg.Server.Port,
			"storage", cfg.Storage.Driver,
			"version", version,
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("storage close error", "error", err)
	}
	logger.Info("server stopped")
}
