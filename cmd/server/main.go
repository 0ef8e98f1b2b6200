package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/gym-buddy/internal/app"
	"github.com/oggyb/gym-buddy/internal/cache"
	"github.com/oggyb/gym-buddy/internal/config"
	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/logger"
	"github.com/oggyb/gym-buddy/internal/server"
	"github.com/oggyb/gym-buddy/internal/service/buddy"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Inject config, logger and matching policy into app context
	appCtx := app.New(cfg, database, redisCache, log)
	log.Info("matching policy", "policy", cfg.Matching.Policy, "probability", cfg.Matching.Probability)

	registrars := []server.Registrar{
		buddy.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedDemoData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	go func() {
		if err := server.StartMetricsServer(ctx, cfg.Metrics.Addr, log); err != nil {
			log.Error("metrics server stopped", "err", err)
		}
	}()

	addr := cfg.GRPC.Host + ":" + cfg.GRPC.Port
	log.Info("starting gRPC server", "addr", addr)

	if err := server.StartGRPCServer(ctx, cfg, log, registrars...); err != nil {
		log.Error("failed to start gRPC server", "err", err)
		return
	}
	log.Info("gRPC server stopped")
}
