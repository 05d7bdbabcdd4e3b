package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"countries/internal/countries"
	countriesmetrics "countries/internal/countries/metrics"
	"countries/internal/platform/config"
	"countries/internal/platform/logger"
	"countries/internal/platform/redis"
	"countries/internal/theme"
	themestore "countries/internal/theme/store"
)

// app holds what a single command invocation needs. Parts are opened lazily so
// `theme` never touches the network and `search` never opens the theme file.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	rdb     goredis.Cmdable
	module  *countries.Module
	themes  *theme.Service
	closers []func() error
}

func newApp(cfg config.Config, stderr io.Writer) *app {
	return &app{cfg: cfg, logger: logger.NewWithWriter(cfg.Log, stderr)}
}

func (a *app) openRedis(ctx context.Context) (goredis.Cmdable, error) {
	if a.rdb != nil || a.cfg.Redis.URL == "" {
		return a.rdb, nil
	}
	rc, err := redis.New(ctx, a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.rdb = rc
	a.closers = append(a.closers, rc.Close)
	return a.rdb, nil
}

func (a *app) openCountries(ctx context.Context) (*countries.Module, error) {
	if a.module != nil {
		return a.module, nil
	}
	rdb, err := a.openRedis(ctx)
	if err != nil {
		return nil, err
	}
	m, err := countries.New(countries.Deps{
		Config:  a.cfg,
		Logger:  a.logger,
		Metrics: countriesmetrics.NewWithRegisterer(prometheus.NewRegistry()),
		Redis:   rdb,
	})
	if err != nil {
		return nil, err
	}
	a.module = m
	a.closers = append(a.closers, func() error {
		m.Close()
		return nil
	})
	return m, nil
}

func (a *app) openTheme(ctx context.Context) (*theme.Service, error) {
	if a.themes != nil {
		return a.themes, nil
	}
	rdb, err := a.openRedis(ctx)
	if err != nil {
		return nil, err
	}
	store, release, err := themestore.Open(a.cfg.Theme, rdb, redis.Keyspace("preferences"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, release)
	svc, err := theme.NewService(store, theme.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if err := svc.Init(ctx); err != nil {
		a.logger.Warn("theme not restored, using default", "error", err)
	}
	a.themes = svc
	return svc, nil
}

// Close releases in reverse opening order.
func (a *app) Close() error {
	var result *multierror.Error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	a.closers = nil
	return result.ErrorOrNil()
}
