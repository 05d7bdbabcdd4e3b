package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"countries/internal/countries/cache"
	"countries/internal/countries/metrics"
	"countries/internal/countries/models"
	"countries/pkg/platform/sentinel"
)

const germanyJSON = `{
	"name": {
		"common": "Germany",
		"official": "Federal Republic of Germany",
		"nativeName": {"deu": {"official": "Bundesrepublik Deutschland", "common": "Deutschland"}}
	},
	"cca3": "DEU",
	"tld": [".de"],
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"capital": ["Berlin"],
	"region": "Europe",
	"subregion": "Western Europe",
	"languages": {"deu": "German"},
	"borders": ["AUT", "BEL", "CZE", "DNK", "FRA", "LUX", "NLD", "POL", "CHE"],
	"population": 83240525,
	"flags": {"png": "https://flagcdn.com/w320/de.png", "svg": "https://flagcdn.com/de.svg"}
}`

const icelandJSON = `{
	"name": {"common": "Iceland", "official": "Iceland"},
	"cca3": "ISL",
	"tld": [".is"],
	"capital": ["Reykjavik"],
	"region": "Europe",
	"population": 366425,
	"flags": {"png": "https://flagcdn.com/w320/is.png"}
}`

const antarcticaJSON = `{
	"name": {"common": "Antarctica", "official": "Antarctica"},
	"cca3": "ATA",
	"tld": [".aq"],
	"region": "Antarctic",
	"population": 1000,
	"borders": [],
	"flags": {"png": "https://flagcdn.com/w320/aq.png"}
}`

// fakeService is a minimal REST Countries stand-in.
type fakeService struct {
	mu       sync.Mutex
	requests []*http.Request
	handler  http.HandlerFunc
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()
	f.handler(w, r)
}

func (f *fakeService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeService) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

type ClientSuite struct {
	suite.Suite
	fake   *fakeService
	server *httptest.Server
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.fake = &fakeService{handler: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "[]")
	}}
	s.server = httptest.NewServer(s.fake)
	c, err := New(s.server.URL+"/v3.1/", WithMetrics(metrics.NewWithRegisterer(prometheus.NewRegistry())))
	s.Require().NoError(err)
	s.client = c
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestFetchAll() {
	s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "["+germanyJSON+","+icelandJSON+"]")
	}

	records, err := s.client.FetchAll(context.Background())
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	req := s.fake.last()
	s.Equal("/v3.1/all", req.URL.Path)
	s.Contains(req.URL.Query().Get("fields"), "borders")
	s.Equal("Germany", records[0].Name)
	s.Equal("Iceland", records[1].Name)
}

func (s *ClientSuite) TestDecodeNormalizesRecord() {
	s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "["+germanyJSON+","+icelandJSON+","+antarcticaJSON+"]")
	}

	records, err := s.client.FetchAll(context.Background())
	s.Require().NoError(err)

	de := records[0]
	s.Equal("DEU", de.Code)
	s.Equal("Federal Republic of Germany", de.OfficialName)
	s.Equal(map[string]string{"deu": "Deutschland"}, de.NativeNames)
	s.Require().NotNil(de.Capital)
	s.Equal("Berlin", *de.Capital)
	s.Require().NotNil(de.Population)
	s.Equal(int64(83240525), *de.Population)
	s.Require().NotNil(de.Subregion)
	s.Equal("Western Europe", *de.Subregion)
	s.Equal(".de", de.PrimaryTLD())
	s.Equal(models.Currency{Name: "Euro", Symbol: "€"}, de.Currencies["EUR"])
	s.Equal("https://flagcdn.com/w320/de.png", de.Flag)
	s.True(de.Borders.Present)
	s.Len(de.Borders.Codes, 9)

	is := records[1]
	s.False(is.Borders.Present, "absent borders must stay absent")
	s.Nil(is.Currencies)
	s.Nil(is.Subregion)
	s.Nil(is.NativeNames)

	aq := records[2]
	s.True(aq.Borders.Present, "empty borders must stay present")
	s.Empty(aq.Borders.Codes)
}

func (s *ClientSuite) TestFetchByName() {
	s.Run("escapes the query into the path", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, "[]")
		}
		_, err := s.client.FetchByName(context.Background(), " united states ")
		s.Require().NoError(err)
		req := s.fake.last()
		s.Equal("/v3.1/name/united states", req.URL.Path)
		s.Equal("/v3.1/name/united%20states", req.URL.EscapedPath())
	})

	s.Run("404 is an empty result", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"status":404,"message":"Not Found"}`)
		}
		records, err := s.client.FetchByName(context.Background(), "zzzz")
		s.Require().NoError(err)
		s.NotNil(records)
		s.Empty(records)
	})

	s.Run("empty query is rejected without a request", func() {
		before := s.fake.count()
		_, err := s.client.FetchByName(context.Background(), "   ")
		s.Require().Error(err)
		s.Equal(CategoryInvalidInput, CategoryOf(err))
		s.ErrorIs(err, sentinel.ErrInvalidInput)
		s.Equal(before, s.fake.count())
	})
}

func (s *ClientSuite) TestFetchByRegion() {
	s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "["+germanyJSON+","+icelandJSON+"]")
	}

	records, err := s.client.FetchByRegion(context.Background(), models.RegionEurope)
	s.Require().NoError(err)
	s.Len(records, 2)
	s.Equal("/v3.1/region/europe", s.fake.last().URL.Path)

	_, err = s.client.FetchByRegion(context.Background(), models.RegionAll)
	s.Equal(CategoryInvalidInput, CategoryOf(err))
}

func (s *ClientSuite) TestFetchByCodes() {
	s.Run("sends one deduplicated batch", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"name":{"common":"Spain"},"cca3":"ESP"},{"name":{"common":"France"},"cca3":"FRA"}]`)
		}
		before := s.fake.count()
		records, err := s.client.FetchByCodes(context.Background(), []string{"fra", "ESP", "FRA", "XXX"})
		s.Require().NoError(err)
		s.Len(records, 2)
		s.Equal(before+1, s.fake.count())

		req := s.fake.last()
		s.Equal("/v3.1/alpha", req.URL.Path)
		s.Equal("FRA,ESP,XXX", req.URL.Query().Get("codes"))
		s.Equal("name,cca3", req.URL.Query().Get("fields"))
	})

	s.Run("no codes is rejected", func() {
		_, err := s.client.FetchByCodes(context.Background(), []string{" "})
		s.Equal(CategoryInvalidInput, CategoryOf(err))
	})
}

func (s *ClientSuite) TestFailures() {
	s.Run("non-success status", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadGateway, `{"status":502,"message":"upstream"}`)
		}
		records, err := s.client.FetchAll(context.Background())
		s.Nil(records)
		fe, ok := AsFetchError(err)
		s.Require().True(ok)
		s.Equal(OpFetchAll, fe.Op)
		s.Equal(CategoryStatus, fe.Category)
		s.Equal(http.StatusBadGateway, fe.StatusCode)
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("404 on list-all is a failure", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"status":404,"message":"Not Found"}`)
		}
		_, err := s.client.FetchAll(context.Background())
		s.Equal(CategoryStatus, CategoryOf(err))
	})

	s.Run("malformed payload", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"name":`)
		}
		records, err := s.client.FetchByRegion(context.Background(), models.RegionAsia)
		s.Nil(records)
		s.Equal(CategoryDecode, CategoryOf(err))
	})

	s.Run("object instead of array", func() {
		s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"status":400,"message":"Bad Request"}`)
		}
		_, err := s.client.FetchByName(context.Background(), "ger")
		s.Equal(CategoryDecode, CategoryOf(err))
		s.Contains(err.Error(), "Bad Request")
	})
}

func (s *ClientSuite) TestCanceledContext() {
	release := make(chan struct{})
	s.fake.handler = func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, http.StatusOK, "[]")
	}
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := s.client.FetchByName(ctx, "ger")
		errCh <- err
	}()

	s.Eventually(func() bool { return s.fake.count() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		s.True(IsCanceled(err))
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.Fail("canceled fetch did not return")
	}
}

func TestIdenticalConcurrentRequestsShareOneCall(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		writeJSON(w, http.StatusOK, "["+germanyJSON+"]")
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]models.CountryRecord, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.FetchByName(context.Background(), "germany")
		}(i)
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		require.Len(t, r, 1)
		assert.Equal(t, "Germany", r[0].Name)
	}
}

func TestResponseCacheSkipsSecondRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusOK, "["+icelandJSON+"]")
	}))
	defer server.Close()

	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	c, err := New(server.URL, WithCache(cache.NewMemoryStore(8, time.Minute)), WithMetrics(m))
	require.NoError(t, err)

	for range 2 {
		records, err := c.FetchByRegion(context.Background(), models.RegionEurope)
		require.NoError(t, err)
		require.Len(t, records, 1)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := New("restcountries.com/v3.1")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "absolute"))
}
