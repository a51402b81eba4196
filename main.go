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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hava/airport-lookup/backend/airports"
	"github.com/hava/airport-lookup/backend/config"
	"github.com/hava/airport-lookup/backend/mongostore"
	"github.com/hava/airport-lookup/backend/pgstore"
)

// backend is a store that owns a connection.
type backend interface {
	airports.Store
	Close(ctx context.Context) error
}

func main() {
	dotenvErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if dotenvErr != nil {
		logger.Info("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store := airports.NewDeferredStore()
	resolver := airports.NewResolver(store, cfg.LookupTimeout, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, airports.NewHandler(resolver, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	db, err := connect(ctx, cfg)
	if err != nil {
		shutdown(srv, cfg.ShutdownTimeout, logger)
		if ctx.Err() != nil {
			logger.Info("received termination signal while connecting, shutting down")
			return nil
		}
		return fmt.Errorf("connect %s store: %w", cfg.StoreDriver, err)
	}
	store.Install(db)
	logger.Info("store connected", "driver", cfg.StoreDriver)

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("received termination signal, shutting down")
		shutdown(srv, cfg.ShutdownTimeout, logger)
		return nil
	}
}

func newRouter(cfg config.Config, h *airports.Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(cfg.RequestTimeout),
	)
	router.Mount("/", h.Routes())
	return router
}

func connect(ctx context.Context, cfg config.Config) (backend, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return pgstore.Connect(ctx, cfg.Postgres.DatabaseURL)
	default:
		return mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	}
}

func shutdown(srv *http.Server, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
}
