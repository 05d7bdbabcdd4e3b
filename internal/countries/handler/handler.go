// Package handler exposes the country browser over HTTP. Every request runs
// against the view controller of the caller's session.
package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"countries/internal/countries/client"
	"countries/internal/countries/models"
	"countries/internal/countries/view"
	"countries/internal/platform/middleware"
	"countries/pkg/platform/httputil"
	"countries/pkg/platform/sentinel"
	"countries/pkg/requestcontext"
)

// SessionHeader carries the browsing session ID in and out.
const SessionHeader = middleware.SessionIDHeader

// Sessions hands out the view controller of a session.
type Sessions interface {
	Acquire(id string) (*view.Controller, error)
	Remove(id string) bool
}

// Handler wires country endpoints to per-session view controllers.
type Handler struct {
	sessions Sessions
	newID    func() string
	logger   *slog.Logger
}

// New constructs a country handler. newID mints IDs for requests that arrive
// without a session.
func New(sessions Sessions, newID func() string, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		newID:    newID,
		logger:   logger,
	}
}

// Register mounts country endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/regions", h.HandleRegions)
	r.Group(func(r chi.Router) {
		r.Use(h.Session)
		r.Get("/api/countries", h.HandleSearch)
		r.Get("/api/countries/{name}", h.HandleDetail)
		r.Delete("/api/detail", h.HandleCloseDetail)
		r.Get("/api/state", h.HandleState)
		r.Delete("/api/session", h.HandleEndSession)
	})
}

// Session resolves the caller's session ID, minting one when absent, and
// echoes it back so the browser can keep using it.
func (h *Handler) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = h.newID()
		}
		w.Header().Set(SessionHeader, sessionID)
		ctx := requestcontext.WithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandleRegions handles GET /api/regions.
func (h *Handler) HandleRegions(w http.ResponseWriter, _ *http.Request) {
	regions := []string{models.RegionAll.String()}
	for _, r := range models.Regions {
		regions = append(regions, r.String())
	}
	httputil.WriteJSON(w, http.StatusOK, RegionsResponse{Regions: regions})
}

// HandleSearch handles GET /api/countries?q=&region=.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	sessionID := requestcontext.SessionID(ctx)
	start := time.Now()

	state, err := models.NewSearchState(r.URL.Query().Get("q"), r.URL.Query().Get("region"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	res, err := ctrl.Search(ctx, state)
	if err != nil {
		h.logOutcome(r, "search not applied", err,
			"query", state.Query,
			"region", state.Region,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "search applied",
		"request_id", requestID,
		"session_id", sessionID,
		"query", state.Query,
		"region", state.Region,
		"mode", res.Mode,
		"count", len(res.Records),
		"degraded", res.Degraded(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, toSearchResponse(res))
}

// HandleDetail handles GET /api/countries/{name}.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, fmt.Errorf("country name: %w", sentinel.ErrInvalidInput))
		return
	}

	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	detail, err := ctrl.OpenDetail(ctx, name)
	if err != nil {
		err = upstream(err)
		h.logOutcome(r, "detail not opened", err, "name", name)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "detail opened",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.SessionID(ctx),
		"name", detail.Record.Name,
		"neighbors", len(detail.Neighbors.Names()),
		"neighbors_unavailable", detail.Neighbors.Unavailable,
	)
	httputil.WriteJSON(w, http.StatusOK, toDetail(detail))
}

// HandleCloseDetail handles DELETE /api/detail.
func (h *Handler) HandleCloseDetail(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	ctrl.CloseDetail()
	w.WriteHeader(http.StatusNoContent)
}

// HandleState handles GET /api/state.
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	sessionID := requestcontext.SessionID(r.Context())
	httputil.WriteJSON(w, http.StatusOK, toStateResponse(sessionID, ctrl.Snapshot()))
}

// HandleEndSession handles DELETE /api/session.
func (h *Handler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.Remove(requestcontext.SessionID(r.Context())) {
		httputil.WriteError(w, fmt.Errorf("session: %w", sentinel.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*view.Controller, bool) {
	ctx := r.Context()
	ctrl, err := h.sessions.Acquire(requestcontext.SessionID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "session unavailable",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return ctrl, true
}

// upstream marks remote fetch failures as a bad gateway, except cancellation.
func upstream(err error) error {
	if fe, ok := client.AsFetchError(err); ok && fe.Category != client.CategoryCanceled &&
		!errors.Is(err, sentinel.ErrUnavailable) {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return err
}

func (h *Handler) logOutcome(r *http.Request, msg string, err error, attrs ...any) {
	ctx := r.Context()
	attrs = append(attrs,
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.SessionID(ctx),
		"error", err,
	)
	switch {
	case errors.Is(err, sentinel.ErrSuperseded), errors.Is(err, sentinel.ErrNotFound),
		errors.Is(err, sentinel.ErrInvalidInput), client.IsCanceled(err):
		h.logger.DebugContext(ctx, msg, attrs...)
	default:
		h.logger.WarnContext(ctx, msg, attrs...)
	}
}
