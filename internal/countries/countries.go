// Package countries assembles the country browser: query client, optional
// response cache, search engine, border resolver and the per-session views.
package countries

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"countries/internal/countries/borders"
	"countries/internal/countries/cache"
	"countries/internal/countries/client"
	"countries/internal/countries/handler"
	"countries/internal/countries/metrics"
	"countries/internal/countries/search"
	"countries/internal/countries/session"
	"countries/internal/countries/view"
	"countries/internal/platform/config"
	redisplatform "countries/internal/platform/redis"
)

// Deps are the process-level collaborators of the module.
type Deps struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Redis is required only when the cache backend is redis.
	Redis redis.Cmdable
}

// Module is the wired country browser.
type Module struct {
	Client   *client.Client
	Engine   *search.Engine
	Resolver *borders.Resolver
	Sessions *session.Registry
	Handler  *handler.Handler

	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New wires the module from configuration.
func New(deps Deps) (*Module, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Metrics == nil {
		return nil, fmt.Errorf("metrics are required")
	}
	cfg := deps.Config

	store, err := newCache(cfg.Cache, deps.Redis)
	if err != nil {
		return nil, err
	}

	opts := []client.Option{
		client.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		client.WithMetrics(deps.Metrics),
		client.WithLogger(deps.Logger),
	}
	if store != nil {
		opts = append(opts, client.WithCache(store))
	}
	c, err := client.New(cfg.API.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("create query client: %w", err)
	}

	engine, err := search.New(c, search.WithLogger(deps.Logger))
	if err != nil {
		return nil, err
	}
	resolver, err := borders.New(c, borders.WithMetrics(deps.Metrics), borders.WithLogger(deps.Logger))
	if err != nil {
		return nil, err
	}

	m := &Module{
		Client:   c,
		Engine:   engine,
		Resolver: resolver,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
	}

	sessions, err := session.New(m.NewController, cfg.Session.Limit, cfg.Session.TTL,
		session.WithMetrics(deps.Metrics),
		session.WithLogger(deps.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create session registry: %w", err)
	}
	m.Sessions = sessions
	m.Handler = handler.New(sessions, session.NewID, deps.Logger)

	deps.Logger.Info("country browser ready",
		"api", cfg.API.BaseURL,
		"cache", cfg.Cache.Backend,
		"session_limit", cfg.Session.Limit,
	)
	return m, nil
}

// NewController builds a standalone view controller over the module's engine.
func (m *Module) NewController() (*view.Controller, error) {
	return view.New(m.Engine, m.Client, m.Resolver,
		view.WithMetrics(m.metrics),
		view.WithLogger(m.logger),
	)
}

// Close ends every session.
func (m *Module) Close() {
	m.Sessions.Close()
}

func newCache(cfg config.Cache, rdb redis.Cmdable) (cache.Store, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemoryStore(cfg.Size, cfg.TTL), nil
	case config.CacheRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis response cache requires a redis client")
		}
		return cache.NewRedisStore(rdb, redisplatform.Keyspace("responses"), cfg.TTL), nil
	default:
		return nil, nil
	}
}
