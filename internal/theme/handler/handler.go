package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"countries/internal/theme"
	"countries/pkg/platform/httputil"
	"countries/pkg/platform/sentinel"
	"countries/pkg/requestcontext"
)

// Service defines the theme operations the handler needs.
type Service interface {
	Current() theme.Theme
	Set(ctx context.Context, t theme.Theme) (theme.Theme, error)
	Toggle(ctx context.Context) (theme.Theme, error)
}

// ThemeRequest is the body of PUT /api/theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ThemeResponse reports the active theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// Handler wires theme endpoints to the theme service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts theme endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/theme", h.HandleGet)
	r.Put("/api/theme", h.HandleSet)
	r.Post("/api/theme/toggle", h.HandleToggle)
}

// HandleGet handles GET /api/theme.
func (h *Handler) HandleGet(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, ThemeResponse{Theme: h.service.Current().String()})
}

// HandleSet handles PUT /api/theme.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ThemeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		httputil.WriteError(w, fmt.Errorf("decode theme request: %w", sentinel.ErrInvalidInput))
		return
	}
	t, err := theme.Parse(req.Theme)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	current, err := h.service.Set(ctx, t)
	if err != nil {
		h.logger.ErrorContext(ctx, "theme not saved",
			"request_id", requestcontext.RequestID(ctx),
			"theme", t,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ThemeResponse{Theme: current.String()})
}

// HandleToggle handles POST /api/theme/toggle.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current, err := h.service.Toggle(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "theme not toggled",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ThemeResponse{Theme: current.String()})
}
