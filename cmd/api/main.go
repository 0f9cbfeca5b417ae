package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spacesedan/polarity/config"
	"github.com/spacesedan/polarity/internal/api"
	"github.com/spacesedan/polarity/internal/cache"
	"github.com/spacesedan/polarity/internal/clients"
	"github.com/spacesedan/polarity/internal/db"
	"github.com/spacesedan/polarity/internal/lemma"
	"github.com/spacesedan/polarity/internal/logging"
	"github.com/spacesedan/polarity/internal/monitoring"
	"github.com/spacesedan/polarity/internal/pipeline"
	"github.com/spacesedan/polarity/internal/publish"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := clients.GetPostgresClient(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("[Main] Failed to connect to PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pg.Close()

	store := db.NewStore(pg.DB)
	if err := store.InitSchema(ctx); err != nil {
		slog.Error("[Main] Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Warm the linguistic model so the first request does not pay for it.
	if _, err := lemma.Load(); err != nil {
		slog.Error("[Main] Failed to load linguistic model", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var resultsCache api.ResultCache
	if cfg.Valkey.Enabled {
		resultsCache = cache.InitResultsCache(cfg.Valkey)
		defer cache.CloseResultsCache()
	}

	var publisher api.ResultPublisher
	if cfg.Kafka.Enabled {
		if err := clients.InitKafkaProducer(cfg.Kafka); err != nil {
			slog.Error("[Main] Failed to init Kafka producer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer clients.CloseKafkaProducer()

		p := publish.NewPublisher(cfg.Kafka.Topic)
		go p.Start(ctx)
		publisher = p
	}

	metrics := monitoring.New()
	handler := api.NewHandler(pipeline.New(), store, resultsCache, publisher, metrics)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 60 * time.Second
	e.Use(middleware.Recover())
	e.Use(api.MetricsMiddleware(metrics))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	handler.Register(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		slog.Info("[Main] Starting API server", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("[Main] Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
