package accounts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hydrowatch/hydrowatch/internal/platform/httpx"
)

// Handler wires the signup/login/profile endpoints for one principal role.
// The user and admin route groups are two instances of this handler with
// different stores and signing secrets.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	role      Role
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, role Role) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		role:      role,
		validator: validator.New(),
	}
}

// MountRoutes registers the role's auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.service.RequireToken(h.logger))
		r.Get("/profile", h.handleProfile)
	})
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// handleSignup validates the payload before any hashing work, then registers
// the account. Shape failures answer 200 with the legacy "Incorrect format"
// message; the dashboard client keys off the message body, not the status.
func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusOK, "Incorrect format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusOK, "Incorrect format")
		return
	}

	_, err := h.service.Register(r.Context(), RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, httpx.ErrDuplicate) {
			httpx.Problem(w, http.StatusConflict, "Duplicate", "account already exists")
			return
		}
		h.logger.Error("signup failed", slog.String("role", string(h.role)), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("account registered", slog.String("role", string(h.role)), slog.String("email", req.Email))
	httpx.Message(w, http.StatusOK, h.registeredMessage())
}

func (h *Handler) registeredMessage() string {
	if h.role == RoleAdmin {
		return "Admin registered"
	}
	return "User registered"
}

// handleLogin answers 404 for an unknown email and 401 for a wrong password,
// mirroring the dashboard's expectations.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrUnauthorized) {
			h.logger.Error("login failed", slog.String("role", string(h.role)), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, tokenResponse{Token: token})
}

// handleProfile re-reads the record behind the verified token. The response
// never carries the password hash.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	accountID := AccountIDFromContext(r.Context())
	profile, err := h.service.Profile(r.Context(), accountID)
	if err != nil {
		if !errors.Is(err, httpx.ErrNotFound) {
			h.logger.Error("profile fetch failed", slog.String("role", string(h.role)), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}
