package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticketapp/internal/api/http"
	"github.com/spec-kit/ticketapp/internal/config"
	"github.com/spec-kit/ticketapp/internal/observability"
	"github.com/spec-kit/ticketapp/internal/persistence"
	"github.com/spec-kit/ticketapp/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	app, err := httptransport.NewServer(cfg, logger, kv)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("storage", cfg.Storage.Backend))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openStore connects the configured backend and returns its closer.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KeyValueStore, func()) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := persistence.OpenRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		return repository.NewRedisStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }
	case config.BackendPostgres:
		pg, err := persistence.OpenPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to open postgres", zap.Error(err))
		}
		return repository.NewPostgresStore(pg.Pool()), pg.Close
	default:
		logger.Warn("using in-memory storage; data is lost on restart")
		return repository.NewMemoryStore(), func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
