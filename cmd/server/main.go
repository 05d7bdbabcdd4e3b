package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"countries/internal/countries"
	countriesmetrics "countries/internal/countries/metrics"
	"countries/internal/platform/config"
	"countries/internal/platform/httpserver"
	"countries/internal/platform/logger"
	"countries/internal/platform/metrics"
	"countries/internal/platform/redis"
	"countries/internal/theme"
	themehandler "countries/internal/theme/handler"
	themestore "countries/internal/theme/store"
	httptransport "countries/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	health := map[string]httptransport.HealthCheck{}
	var rdb goredis.Cmdable
	if cfg.Redis.URL != "" {
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		rdb = rc
		health["redis"] = rc.Health
	}

	module, err := countries.New(countries.Deps{
		Config:  cfg,
		Logger:  log,
		Metrics: countriesmetrics.NewWithRegisterer(reg),
		Redis:   rdb,
	})
	if err != nil {
		return err
	}
	defer module.Close()

	themes, releaseThemes, err := themestore.Open(cfg.Theme, rdb, redis.Keyspace("preferences"))
	if err != nil {
		return err
	}
	defer func() { _ = releaseThemes() }()
	themeService, err := theme.NewService(themes, theme.WithLogger(log))
	if err != nil {
		return err
	}
	if err := themeService.Init(ctx); err != nil {
		log.Warn("theme not restored, using default", "error", err)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        metrics.NewWithRegisterer(reg),
		Gatherer:       reg,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Health:         health,
		Countries:      module.Handler,
		Theme:          themehandler.New(themeService, log),
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server stopped")
	return nil
}
