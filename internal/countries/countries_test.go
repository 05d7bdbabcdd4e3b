package countries

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/countries/metrics"
	"countries/internal/countries/models"
	"countries/internal/platform/config"
)

const europePayload = `[
 {"name":{"common":"Poland"},"cca3":"POL","region":"Europe","borders":["DEU"],"tld":[".pl"],"flags":{"png":"p.png"}},
 {"name":{"common":"Germany"},"cca3":"DEU","region":"Europe","borders":["POL","FRA"],"tld":[".de"],"flags":{"png":"d.png"}}
]`

func testConfig(baseURL, backend string) config.Config {
	return config.Config{
		API:     config.API{BaseURL: baseURL},
		Cache:   config.Cache{Backend: backend, TTL: time.Minute, Size: 8},
		Session: config.Session{TTL: time.Minute, Limit: 4},
	}
}

func TestModuleEndToEnd(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/region/europe":
			_, _ = io.WriteString(w, europePayload)
		case "/name/Germany":
			_, _ = io.WriteString(w, `[{"name":{"common":"Germany"},"cca3":"DEU","region":"Europe","borders":["POL","FRA"],"tld":[".de"],"flags":{"png":"d.png"}}]`)
		case "/alpha":
			_, _ = io.WriteString(w, `[{"name":{"common":"France"},"cca3":"FRA"},{"name":{"common":"Poland"},"cca3":"POL"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m, err := New(Deps{
		Config:  testConfig(srv.URL+"/", config.CacheMemory),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.NewWithRegisterer(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	defer m.Close()

	ctrl, err := m.NewController()
	require.NoError(t, err)
	ctx := context.Background()

	res, err := ctrl.Search(ctx, models.SearchState{Region: models.RegionEurope})
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)

	_, err = ctrl.Search(ctx, models.SearchState{Region: models.RegionEurope})
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load(), "second region query is served from the response cache")

	d, err := ctrl.OpenDetail(ctx, "Germany")
	require.NoError(t, err)
	assert.Equal(t, []string{"Poland", "France"}, d.Neighbors.Names())
}

func TestNewRejectsRedisCacheWithoutClient(t *testing.T) {
	_, err := New(Deps{
		Config:  testConfig("http://localhost/", config.CacheRedis),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.NewWithRegisterer(prometheus.NewRegistry()),
	})
	assert.Error(t, err)
}
