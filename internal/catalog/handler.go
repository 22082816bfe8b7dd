package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// Handler exposes the public registry endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bodies, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list water bodies", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if bodies == nil {
		bodies = []WaterBody{}
	}
	httpx.JSON(w, http.StatusOK, bodies)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	body, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) {
			h.logger.Error("get water body", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, body)
}
