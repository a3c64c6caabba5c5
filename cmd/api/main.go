package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mateovidal/ordersync-backend/api/routes"
	"github.com/mateovidal/ordersync-backend/internal/history"
	"github.com/mateovidal/ordersync-backend/internal/inventory"
	"github.com/mateovidal/ordersync-backend/internal/payments"
	"github.com/mateovidal/ordersync-backend/internal/promotions"
	"github.com/mateovidal/ordersync-backend/internal/reconcile"
	"github.com/mateovidal/ordersync-backend/internal/shipping"
	"github.com/mateovidal/ordersync-backend/internal/storage"
	"github.com/mateovidal/ordersync-backend/internal/tax"
	"github.com/mateovidal/ordersync-backend/pkg/config"
	"github.com/mateovidal/ordersync-backend/pkg/db"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
	"github.com/mateovidal/ordersync-backend/pkg/metrics"
	"github.com/mateovidal/ordersync-backend/pkg/migrate"
	"github.com/mateovidal/ordersync-backend/pkg/outbox"
	"github.com/mateovidal/ordersync-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gdb := dbClient.DB()
	emitter := storage.NewEmitter(dbClient, outbox.NewService(outbox.NewRepository(gdb), logg))

	reconcileService, err := reconcile.NewService(
		storage.NewStore(gdb),
		shipping.NewEstimator(gdb, logg),
		tax.NewCalculator(gdb, logg),
		promotions.NewEngine(gdb, logg),
		payments.NewValidator(logg),
		history.NewRecorder(gdb, logg),
		inventory.NewReserver(gdb, logg),
		redisClient,
		emitter,
		cfg.Reconcile.LockTTL,
		logg,
		metrics.NewReconcileMetrics(registry),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create reconcile service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, reconcileService),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(ctx, "shutting down on signal "+sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
