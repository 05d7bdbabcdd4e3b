// Package view holds the per-session browsing state: the displayed record set,
// the active search and the open detail page.
//
// Every search and detail load is tagged with a generation. A completion whose
// generation is no longer current is discarded with sentinel.ErrSuperseded, and
// starting a newer request cancels the older one's context.
package view

//go:generate mockgen -source=controller.go -destination=mocks/mocks.go -package=mocks Searcher DetailFetcher NeighborResolver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/agext/levenshtein"

	"countries/internal/countries/metrics"
	"countries/internal/countries/models"
	"countries/internal/countries/search"
	"countries/pkg/platform/sentinel"
)

// Searcher produces the display set for a search state.
type Searcher interface {
	Search(ctx context.Context, state models.SearchState) (search.Result, error)
}

// DetailFetcher loads the full record behind a detail route.
type DetailFetcher interface {
	FetchByName(ctx context.Context, query string) ([]models.CountryRecord, error)
}

// NeighborResolver maps border codes to neighbor names.
type NeighborResolver interface {
	Resolve(ctx context.Context, borders models.BorderCodes) (models.NeighborResolution, error)
}

// Detail is an open detail page.
type Detail struct {
	Record    models.CountryRecord
	Neighbors models.NeighborResolution
}

// Snapshot is a consistent copy of the controller's displayed state.
type Snapshot struct {
	// State is the search that produced Records. A search still in flight
	// only shows up as Loading.
	State   models.SearchState
	Mode    search.Mode
	Records []models.CountryRecord
	// Failure is the error behind a degraded record set, if any.
	Failure error
	Loading bool
	Detail  *Detail
}

// Controller is the view controller of one browsing session. It is safe for
// concurrent use; overlapping calls are ordered by issue time, not completion.
type Controller struct {
	searcher  Searcher
	details   DetailFetcher
	neighbors NeighborResolver
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu           sync.Mutex
	closed       bool
	state        models.SearchState // applied, never pending
	result       search.Result
	loading      bool
	searchGen    uint64
	cancelSearch context.CancelFunc
	detail       *Detail
	detailGen    uint64
	cancelDetail context.CancelFunc
}

type Option func(*Controller)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(searcher Searcher, details DetailFetcher, neighbors NeighborResolver, opts ...Option) (*Controller, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if details == nil {
		return nil, fmt.Errorf("detail fetcher is required")
	}
	if neighbors == nil {
		return nil, fmt.Errorf("neighbor resolver is required")
	}
	c := &Controller{
		searcher:  searcher,
		details:   details,
		neighbors: neighbors,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     models.DefaultSearchState(),
		result: search.Result{
			State:   models.DefaultSearchState(),
			Records: []models.CountryRecord{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search makes state the current search and runs it. Any search still in
// flight is canceled. When a newer Search starts before this one completes,
// the result is dropped and ErrSuperseded is returned.
func (c *Controller) Search(ctx context.Context, state models.SearchState) (search.Result, error) {
	state, err := models.NewSearchState(state.Query, string(state.Region))
	if err != nil {
		return search.Result{}, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return search.Result{}, fmt.Errorf("view is closed: %w", sentinel.ErrSuperseded)
	}
	if c.cancelSearch != nil {
		c.cancelSearch()
	}
	c.searchGen++
	gen := c.searchGen
	ctx, cancel := context.WithCancel(ctx)
	c.cancelSearch = cancel
	c.loading = true
	c.mu.Unlock()

	res, err := c.searcher.Search(ctx, state)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.searchGen || c.closed {
		cancel()
		c.superseded(ctx, "search", "query", state.Query, "region", state.Region)
		return search.Result{}, sentinel.ErrSuperseded
	}
	// Still current but the caller went away: keep the previous display set.
	abandoned := ctx.Err()
	cancel()
	c.cancelSearch = nil
	c.loading = false
	if err != nil {
		return search.Result{}, err
	}
	if abandoned != nil {
		return search.Result{}, abandoned
	}
	c.state = state
	c.result = res
	return res, nil
}

// OpenDetail loads the record named name and resolves its neighbors, replacing
// any open detail page. A load that is closed or replaced before it finishes
// returns ErrSuperseded. No matching record yields ErrNotFound.
func (c *Controller) OpenDetail(ctx context.Context, name string) (Detail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Detail{}, fmt.Errorf("country name is required: %w", sentinel.ErrInvalidInput)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Detail{}, fmt.Errorf("view is closed: %w", sentinel.ErrSuperseded)
	}
	if c.cancelDetail != nil {
		c.cancelDetail()
	}
	c.detailGen++
	gen := c.detailGen
	ctx, cancel := context.WithCancel(ctx)
	c.cancelDetail = cancel
	c.detail = nil
	c.mu.Unlock()
	defer cancel()

	records, err := c.details.FetchByName(ctx, name)
	if err != nil {
		if !c.current(gen) {
			c.superseded(ctx, "detail", "name", name)
			return Detail{}, sentinel.ErrSuperseded
		}
		return Detail{}, fmt.Errorf("load country %q: %w", name, err)
	}
	record, ok := bestMatch(records, name)
	if !ok {
		if !c.current(gen) {
			return Detail{}, sentinel.ErrSuperseded
		}
		return Detail{}, fmt.Errorf("country %q: %w", name, sentinel.ErrNotFound)
	}

	neighbors, err := c.neighbors.Resolve(ctx, record.Borders)
	if err != nil && c.current(gen) {
		return Detail{}, fmt.Errorf("resolve neighbors of %q: %w", record.Name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.detailGen || c.closed {
		c.superseded(ctx, "detail", "name", name)
		return Detail{}, sentinel.ErrSuperseded
	}
	c.cancelDetail = nil
	d := Detail{Record: record, Neighbors: neighbors}
	c.detail = &d
	return d, nil
}

// CloseDetail leaves the detail page, abandoning a load still in flight.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropDetail()
}

// Close abandons every in-flight request. Later calls fail with ErrSuperseded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancelSearch != nil {
		c.cancelSearch()
		c.cancelSearch = nil
	}
	c.searchGen++
	c.loading = false
	c.dropDetail()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Snapshot returns the displayed state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		State:   c.state,
		Mode:    c.result.Mode,
		Records: c.result.Records,
		Failure: c.result.Failure,
		Loading: c.loading,
	}
	if c.detail != nil {
		d := *c.detail
		snap.Detail = &d
	}
	return snap
}

func (c *Controller) dropDetail() {
	if c.cancelDetail != nil {
		c.cancelDetail()
		c.cancelDetail = nil
	}
	c.detailGen++
	c.detail = nil
}

func (c *Controller) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.detailGen && !c.closed
}

func (c *Controller) superseded(ctx context.Context, view string, attrs ...any) {
	c.logger.DebugContext(ctx, "discarding superseded result", append([]any{"view", view}, attrs...)...)
	if c.metrics != nil {
		c.metrics.IncrementSuperseded(view)
	}
}

// bestMatch picks the record a detail route refers to. The name endpoint is a
// substring search, so "Niger" also returns "Nigeria"; an exact common or
// official name wins, otherwise the most similar common name.
func bestMatch(records []models.CountryRecord, name string) (models.CountryRecord, bool) {
	if len(records) == 0 {
		return models.CountryRecord{}, false
	}
	for _, r := range records {
		if strings.EqualFold(r.Name, name) || strings.EqualFold(r.OfficialName, name) {
			return r, true
		}
	}
	best, bestScore := 0, -1.0
	lower := strings.ToLower(name)
	for i, r := range records {
		if score := levenshtein.Match(lower, strings.ToLower(r.Name), nil); score > bestScore {
			best, bestScore = i, score
		}
	}
	return records[best], true
}
