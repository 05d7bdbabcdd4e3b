package search

//go:generate mockgen -source=engine.go -destination=mocks/mocks.go -package=mocks Fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"countries/internal/countries/client"
	"countries/internal/countries/models"
	"countries/pkg/platform/sentinel"
)

// Fetcher is the subset of the query client the engine drives.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.CountryRecord, error)
	FetchByName(ctx context.Context, query string) ([]models.CountryRecord, error)
	FetchByRegion(ctx context.Context, region models.Region) ([]models.CountryRecord, error)
}

// Mode records which remote query produced a result.
type Mode string

const (
	ModeAll          Mode = "all"
	ModeName         Mode = "name"
	ModeRegion       Mode = "region"
	ModeNameInRegion Mode = "name_in_region"
)

// Result is the display set for one search state.
type Result struct {
	State   models.SearchState
	Mode    Mode
	Records []models.CountryRecord
	// Failure holds the fetch error when the result was degraded to empty.
	Failure error
}

// Degraded reports whether the records are empty because the fetch failed.
func (r Result) Degraded() bool {
	return r.Failure != nil
}

// Engine turns a search state into exactly one remote query.
type Engine struct {
	fetcher Fetcher
	logger  *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine over fetcher.
func New(fetcher Fetcher, opts ...Option) (*Engine, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	e := &Engine{
		fetcher: fetcher,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Search runs the single query state calls for:
//   - non-empty query: name search, intersected with the region locally when one is set
//   - empty query, region set: region query
//   - neither: every record
//
// Name matching is left to the service because its rules (accent folding and
// partial matches) cannot be reproduced locally. A failed fetch yields an empty,
// degraded Result; only an invalid region is returned as an error.
func (e *Engine) Search(ctx context.Context, state models.SearchState) (Result, error) {
	if state.Region == "" {
		state.Region = models.RegionAll
	}
	if !state.Region.IsValid() {
		return Result{}, fmt.Errorf("unknown region %q: %w", state.Region, sentinel.ErrInvalidInput)
	}
	state.Query = strings.TrimSpace(state.Query)

	res := Result{State: state}
	var (
		records []models.CountryRecord
		err     error
	)
	switch {
	case state.Query != "" && !state.Region.IsAll():
		res.Mode = ModeNameInRegion
		records, err = e.fetcher.FetchByName(ctx, state.Query)
		if err == nil {
			records = Filter(records, "", state.Region)
		}
	case state.Query != "":
		res.Mode = ModeName
		records, err = e.fetcher.FetchByName(ctx, state.Query)
	case !state.Region.IsAll():
		res.Mode = ModeRegion
		records, err = e.fetcher.FetchByRegion(ctx, state.Region)
	default:
		res.Mode = ModeAll
		records, err = e.fetcher.FetchAll(ctx)
	}

	if err != nil {
		e.logFailure(ctx, state, err)
		res.Records = []models.CountryRecord{}
		res.Failure = err
		return res, nil
	}
	if records == nil {
		records = []models.CountryRecord{}
	}
	res.Records = records
	return res, nil
}

func (e *Engine) logFailure(ctx context.Context, state models.SearchState, err error) {
	if client.IsCanceled(err) {
		e.logger.DebugContext(ctx, "search abandoned",
			"query", state.Query,
			"region", state.Region,
		)
		return
	}
	e.logger.WarnContext(ctx, "search fetch failed, showing empty result",
		"query", state.Query,
		"region", state.Region,
		"category", client.CategoryOf(err),
		"error", err,
	)
}
