// Package borders joins a record's border codes to neighbor display names.
package borders

//go:generate mockgen -source=resolver.go -destination=mocks/mocks.go -package=mocks CodeFetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"countries/internal/countries/client"
	"countries/internal/countries/metrics"
	"countries/internal/countries/models"
	pstrings "countries/pkg/platform/strings"
)

// CodeFetcher looks up records by cca3 code in one request.
type CodeFetcher interface {
	FetchByCodes(ctx context.Context, codes []string) ([]models.CountryRecord, error)
}

// Resolver turns border codes into neighbor names.
type Resolver struct {
	fetcher CodeFetcher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Resolver)

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(fetcher CodeFetcher, opts ...Option) (*Resolver, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("code fetcher is required")
	}
	r := &Resolver{
		fetcher: fetcher,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve maps borders to neighbor names with at most one remote call.
//
// Absent and empty lists resolve to an empty result without a call. Codes the
// service does not know are kept as unresolved entries and left out of Names.
// A failed lookup is reported through Unavailable rather than as an error, so
// the detail view still renders with no neighbors. Only cancellation is
// returned, letting callers drop a resolution nobody is waiting for.
func (r *Resolver) Resolve(ctx context.Context, borders models.BorderCodes) (models.NeighborResolution, error) {
	if borders.Empty() {
		return models.EmptyResolution(), nil
	}

	codes := pstrings.DedupeAndTrimUpper(borders.Codes)
	res := models.NeighborResolution{
		Codes:   codes,
		Entries: make(map[string]models.Neighbor, len(codes)),
	}
	if len(codes) == 0 {
		return models.EmptyResolution(), nil
	}

	records, err := r.fetcher.FetchByCodes(ctx, codes)
	if err != nil {
		if client.IsCanceled(err) {
			return models.NeighborResolution{}, err
		}
		r.logger.WarnContext(ctx, "neighbor lookup failed, rendering without neighbors",
			"codes", len(codes),
			"category", client.CategoryOf(err),
			"error", err,
		)
		res.Unavailable = true
		for _, code := range codes {
			res.Entries[code] = models.Neighbor{Code: code}
		}
		return res, nil
	}

	byCode := make(map[string]string, len(records))
	for _, rec := range records {
		byCode[rec.Code] = rec.Name
	}
	for _, code := range codes {
		name, ok := byCode[code]
		res.Entries[code] = models.Neighbor{Code: code, Name: name, Resolved: ok}
	}

	if missing := res.Unresolved(); missing > 0 {
		r.logger.DebugContext(ctx, "border codes without a matching record", "missing", missing)
		if r.metrics != nil {
			r.metrics.AddUnresolvedNeighbors(missing)
		}
	}
	return res, nil
}
