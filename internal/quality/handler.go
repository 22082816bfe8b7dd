package quality

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// Handler exposes the dashboard quality endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountLakeRoutes registers the per-lake quality routes on the lakes
// subrouter.
func (h *Handler) MountLakeRoutes(r chi.Router) {
	r.Get("/{id}/quality", h.history)
	r.Get("/{id}/latest", h.latest)
}

// MountOverviewRoute registers the fleet overview route.
func (h *Handler) MountOverviewRoute(r chi.Router) {
	r.Get("/overview", h.overview)
}

type historyResponse struct {
	WaterBodyID string    `json:"waterBodyId"`
	Span        string    `json:"span"`
	Readings    []Reading `json:"readings"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	span := r.URL.Query().Get("span")
	if span == "" {
		span = "1M"
	}
	readings, err := h.service.History(r.Context(), id, span)
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrValidation) {
			h.logger.Error("fetch history", slog.String("water_body", id), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	if readings == nil {
		readings = []Reading{}
	}
	httpx.JSON(w, http.StatusOK, historyResponse{WaterBodyID: id, Span: span, Readings: readings})
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snapshot, err := h.service.Latest(r.Context(), id)
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) {
			h.logger.Error("fetch latest", slog.String("water_body", id), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, snapshot)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("build overview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, overview)
}
