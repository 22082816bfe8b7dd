package reports

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hydrowatch/hydrowatch/internal/accounts"
	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// Handler exposes community report endpoints. The router mounts the user
// routes behind the user token middleware and the admin routes behind the
// admin one.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountUserRoutes registers the reporter-facing routes.
func (h *Handler) MountUserRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// MountAdminRoutes registers the moderation routes.
func (h *Handler) MountAdminRoutes(r chi.Router) {
	r.Post("/{id}/status", h.updateStatus)
}

type createRequest struct {
	WaterBodyID string `json:"waterBodyId" validate:"required"`
	ReportType  string `json:"reportType" validate:"required,oneof=pollution illegal_activity infrastructure other"`
	Description string `json:"description" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	report, err := h.service.Create(r.Context(), CreateInput{
		WaterBodyID: req.WaterBodyID,
		ReporterID:  accounts.AccountIDFromContext(r.Context()),
		ReportType:  ReportType(req.ReportType),
		Description: req.Description,
	})
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) {
			h.logger.Error("create report", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, report)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), r.URL.Query().Get("waterBodyId"))
	if err != nil {
		h.logger.Error("list reports", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Report{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending investigating resolved"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	report, err := h.service.Transition(r.Context(), chi.URLParam(r, "id"), ReportStatus(req.Status))
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrValidation) {
			h.logger.Error("update report status", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
