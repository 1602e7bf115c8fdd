package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/complaint-service/internal/api/http"
	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/app"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.Open(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed to open stores", zap.Error(err))
	}
	defer rt.Close()

	metrics := observability.NewMetrics()
	services := app.NewServices(*cfg, rt.Store, rt.Locker, logger, metrics)
	worker.StartNotificationWorker(services.Notifications)

	sweep := worker.NewProgressSweep(services.Progress, services.Notifications, cfg.Progress.AlertThreshold, metrics, logger)
	if err := worker.StartProgressScheduler(ctx, cfg.Progress, sweep, logger); err != nil {
		logger.Fatal("failed to start progress sweep", zap.Error(err))
	}

	server := httptransport.NewServer(httptransport.ServerDependencies{
		App:          cfg.App,
		Services:     services,
		Logger:       logger,
		Metrics:      metrics,
		Dependencies: readinessChecks(rt),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := server.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func readinessChecks(rt *app.Runtime) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if rt.Postgres != nil {
		checks["postgres"] = rt.Postgres
	}
	if rt.SQLite != nil {
		checks["sqlite"] = rt.SQLite
	}
	if rt.Redis != nil {
		checks["redis"] = rt.Redis
	}
	return checks
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
