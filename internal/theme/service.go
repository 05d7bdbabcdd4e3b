package theme

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"countries/pkg/platform/sentinel"
)

// Store persists the single theme entry. Load returns sentinel.ErrNotFound
// when nothing has been saved.
type Store interface {
	Load(ctx context.Context) (Theme, error)
	Save(ctx context.Context, t Theme) error
}

// Service owns the current theme.
type Service struct {
	store  Store
	logger *slog.Logger

	mu      sync.RWMutex
	current Theme
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("theme store is required")
	}
	s := &Service{
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		current: Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Init loads the stored theme. A missing entry leaves the default. A storage
// failure also leaves the default and is returned for the caller to report.
func (s *Service) Init(ctx context.Context) error {
	t, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		s.logger.DebugContext(ctx, "no stored theme, using default", "theme", Default)
		return nil
	case err != nil:
		return fmt.Errorf("load theme: %w", err)
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	s.logger.DebugContext(ctx, "theme restored", "theme", t)
	return nil
}

// Current returns the active theme.
func (s *Service) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set persists t and makes it current. On a storage failure the current theme
// is left unchanged.
func (s *Service) Set(ctx context.Context, t Theme) (Theme, error) {
	t, err := Parse(string(t))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, t); err != nil {
		return s.current, fmt.Errorf("save theme: %w", err)
	}
	s.current = t
	s.logger.InfoContext(ctx, "theme changed", "theme", t)
	return t, nil
}

// Toggle switches between light and dark and persists the result.
func (s *Service) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Toggle()
	if err := s.store.Save(ctx, next); err != nil {
		return s.current, fmt.Errorf("save theme: %w", err)
	}
	s.current = next
	s.logger.InfoContext(ctx, "theme toggled", "theme", next)
	return next, nil
}
