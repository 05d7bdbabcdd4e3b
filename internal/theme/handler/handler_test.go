package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countries/internal/theme"
	"countries/pkg/testutil"
)

type memoryStore struct {
	saved   theme.Theme
	failing bool
}

func (m *memoryStore) Load(context.Context) (theme.Theme, error) {
	return m.saved, nil
}

func (m *memoryStore) Save(_ context.Context, t theme.Theme) error {
	if m.failing {
		return errors.New("store offline")
	}
	m.saved = t
	return nil
}

func newRouter(t *testing.T, store *memoryStore) chi.Router {
	t.Helper()
	svc, err := theme.NewService(store)
	require.NoError(t, err)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestThemeEndpoints(t *testing.T) {
	store := &memoryStore{}
	router := newRouter(t, store)

	t.Run("defaults to light", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/theme"))
		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, "light", testutil.UnmarshalResponse[ThemeResponse](t, rr).Theme)
	})

	t.Run("toggle persists", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/api/theme/toggle"))
		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, "dark", testutil.UnmarshalResponse[ThemeResponse](t, rr).Theme)
		assert.Equal(t, theme.Dark, store.saved)
	})

	t.Run("set explicit theme", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/theme", ThemeRequest{Theme: "Light"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusOK(t, rr)
		assert.Equal(t, theme.Light, store.saved)
	})

	t.Run("unknown theme is rejected", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/theme", ThemeRequest{Theme: "sepia"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		store.failing = true
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/api/theme/toggle"))
		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	})
}
