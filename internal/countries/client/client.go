// Package client queries the REST Countries service.
//
// Four query modes are supported: every record, name substring, region, and a
// batched lookup by cca3 code. Each call performs at most one HTTP request and
// returns either records or a *FetchError, never both.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"countries/internal/countries/cache"
	"countries/internal/countries/metrics"
	"countries/internal/countries/models"
	"countries/pkg/platform/sentinel"
	pstrings "countries/pkg/platform/strings"
)

// DefaultBaseURL is the public REST Countries v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1/"

const (
	// listFields keeps list payloads small; the service caps fields at ten.
	listFields = "name,cca3,capital,population,region,subregion,flags,borders,tld,languages"
	// codeFields is all the border resolver needs to join codes to names.
	codeFields = "name,cca3"

	maxBodyBytes = 8 << 20
)

// Client is the remote query client.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	cache   cache.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
	flights singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCache enables the response cache.
func WithCache(store cache.Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:  otel.Tracer("countries/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAll returns every available record.
func (c *Client) FetchAll(ctx context.Context) ([]models.CountryRecord, error) {
	u := c.endpoint(url.Values{"fields": {listFields}}, "all")
	return c.fetch(ctx, OpFetchAll, u, false)
}

// FetchByName returns records whose common name contains query, using the
// service's own matching. No match is an empty result, not an error.
func (c *Client) FetchByName(ctx context.Context, query string) ([]models.CountryRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, newFetchError(OpFetchByName, CategoryInvalidInput, 0, "",
			fmt.Errorf("name query is empty: %w", sentinel.ErrInvalidInput))
	}
	u := c.endpoint(nil, "name", query)
	return c.fetch(ctx, OpFetchByName, u, true)
}

// FetchByRegion returns every record in region, which must not be RegionAll.
func (c *Client) FetchByRegion(ctx context.Context, region models.Region) ([]models.CountryRecord, error) {
	if region.IsAll() || !region.IsValid() {
		return nil, newFetchError(OpFetchByRegion, CategoryInvalidInput, 0, "",
			fmt.Errorf("region %q cannot be fetched: %w", region, sentinel.ErrInvalidInput))
	}
	u := c.endpoint(url.Values{"fields": {listFields}}, "region", strings.ToLower(string(region)))
	return c.fetch(ctx, OpFetchByRegion, u, false)
}

// FetchByCodes returns the records matching any of codes in a single request.
// Codes without a match are omitted from the result.
func (c *Client) FetchByCodes(ctx context.Context, codes []string) ([]models.CountryRecord, error) {
	codes = pstrings.DedupeAndTrimUpper(codes)
	if len(codes) == 0 {
		return nil, newFetchError(OpFetchByCodes, CategoryInvalidInput, 0, "",
			fmt.Errorf("no codes to look up: %w", sentinel.ErrInvalidInput))
	}
	u := c.endpoint(url.Values{
		"codes":  {strings.Join(codes, ",")},
		"fields": {codeFields},
	}, "alpha")
	return c.fetch(ctx, OpFetchByCodes, u, true)
}

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := *c.baseURL
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = strings.TrimSuffix(c.baseURL.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawPath = strings.TrimSuffix(c.baseURL.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.RawQuery = query.Encode()
	return u.String()
}

// fetch coalesces identical in-flight requests. The shared request runs detached
// from any single caller so one caller abandoning it does not fail the others;
// each caller still returns as soon as its own context is done.
func (c *Client) fetch(ctx context.Context, op Op, u string, notFoundIsEmpty bool) ([]models.CountryRecord, error) {
	ctx, span := c.tracer.Start(ctx, "countries.client."+string(op),
		trace.WithAttributes(attribute.String("http.url", u)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, c.fail(span, newFetchError(op, CategoryCanceled, 0, u, err))
	}

	ch := c.flights.DoChan(u, func() (any, error) {
		return c.get(context.WithoutCancel(ctx), op, u, notFoundIsEmpty)
	})

	select {
	case <-ctx.Done():
		return nil, c.fail(span, newFetchError(op, CategoryCanceled, 0, u, ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return nil, c.fail(span, res.Err)
		}
		records := res.Val.([]models.CountryRecord)
		span.SetAttributes(attribute.Int("countries.records", len(records)), attribute.Bool("countries.shared", res.Shared))
		return slices.Clone(records), nil
	}
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if fe, ok := AsFetchError(err); ok && c.metrics != nil {
		c.metrics.IncrementFetchFailure(string(fe.Op), string(fe.Category))
	}
	return err
}

func (c *Client) get(ctx context.Context, op Op, u string, notFoundIsEmpty bool) ([]models.CountryRecord, error) {
	if records, ok := c.cached(ctx, u); ok {
		return records, nil
	}

	start := time.Now()
	if c.metrics != nil {
		defer c.metrics.ObserveFetch(string(op), start)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newFetchError(op, CategoryTransport, 0, u, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, newFetchError(op, CategoryCanceled, 0, u, err)
		}
		return nil, newFetchError(op, CategoryTransport, 0, u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newFetchError(op, CategoryTransport, resp.StatusCode, u, err)
	}

	if resp.StatusCode == http.StatusNotFound && notFoundIsEmpty {
		c.logger.DebugContext(ctx, "remote query matched nothing", "op", op, "url", u)
		return []models.CountryRecord{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newFetchError(op, CategoryStatus, resp.StatusCode, u,
			fmt.Errorf("unexpected status %s: %w", resp.Status, sentinel.ErrUnavailable))
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, newFetchError(op, CategoryDecode, resp.StatusCode, u, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, u, body); err != nil {
			c.logger.WarnContext(ctx, "response cache write failed", "url", u, "error", err)
		}
	}

	c.logger.DebugContext(ctx, "remote query completed",
		"op", op,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}

func (c *Client) cached(ctx context.Context, u string) ([]models.CountryRecord, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, u)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			c.logger.WarnContext(ctx, "response cache read failed", "url", u, "error", err)
		}
		if c.metrics != nil {
			c.metrics.IncrementCacheMiss()
		}
		return nil, false
	}
	records, err := decodeRecords(body)
	if err != nil {
		c.logger.WarnContext(ctx, "discarding undecodable cached response", "url", u, "error", err)
		return nil, false
	}
	if c.metrics != nil {
		c.metrics.IncrementCacheHit()
	}
	return records, true
}
