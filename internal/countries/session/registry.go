// Package session keeps one view controller per browsing session.
//
// Sessions are held in a bounded LRU with idle expiry. A session that is
// evicted, expired or removed has its controller closed, which abandons any
// request still in flight for it.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"

	"countries/internal/countries/metrics"
	"countries/internal/countries/view"
	"countries/pkg/platform/sentinel"
)

// Factory builds the controller for a new session.
type Factory func() (*view.Controller, error)

// Registry maps session IDs to view controllers.
type Registry struct {
	cache   gcache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*options)

type options struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
	clock   gcache.Clock
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces the expiry clock; tests pass gcache.NewFakeClock().
func WithClock(clock gcache.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New creates a registry holding at most limit sessions, each expiring after
// ttl without use.
func New(factory Factory, limit int, ttl time.Duration, opts ...Option) (*Registry, error) {
	if factory == nil {
		return nil, fmt.Errorf("controller factory is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("session limit must be positive, got %d", limit)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}

	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  gcache.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{metrics: o.metrics, logger: o.logger}
	r.cache = gcache.New(limit).
		LRU().
		Clock(o.clock).
		Expiration(ttl).
		LoaderFunc(func(key any) (any, error) {
			ctrl, err := factory()
			if err != nil {
				return nil, err
			}
			r.logger.Debug("session started", "session_id", key)
			return ctrl, nil
		}).
		EvictedFunc(func(key, value any) {
			r.release(key, value)
		}).
		PurgeVisitorFunc(func(key, value any) {
			r.release(key, value)
		}).
		Build()
	return r, nil
}

// NewID mints a session ID.
func NewID() string {
	return uuid.NewString()
}

// Acquire returns the controller of session id, starting the session when it
// does not exist yet. Each call restarts the session's idle timer.
func (r *Registry) Acquire(id string) (*view.Controller, error) {
	if id == "" {
		return nil, fmt.Errorf("session id is required: %w", sentinel.ErrInvalidInput)
	}
	v, err := r.cache.Get(id)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	ctrl := v.(*view.Controller)
	if err := r.cache.Set(id, ctrl); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	r.observe()
	return ctrl, nil
}

// Remove ends session id. It reports whether the session existed.
func (r *Registry) Remove(id string) bool {
	removed := r.cache.Remove(id)
	r.observe()
	return removed
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len(true)
}

// Close ends every session.
func (r *Registry) Close() {
	r.cache.Purge()
	r.observe()
}

// release runs with the cache lock held and must not call back into the cache.
func (r *Registry) release(key, value any) {
	if ctrl, ok := value.(*view.Controller); ok {
		ctrl.Close()
	}
	r.logger.Debug("session ended", "session_id", key)
}

// observe publishes the session count. Entries are reaped lazily during cache
// calls, so the count is taken after each one.
func (r *Registry) observe() {
	if r.metrics != nil {
		r.metrics.SetActiveSessions(r.cache.Len(false))
	}
}
