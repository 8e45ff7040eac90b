package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/firedesk/timecard/internal/platform/httpx"
)

// Handler wires the authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler value.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers HTTP routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/verify-2fa", h.verify2FA)
	r.Post("/set-password", h.setPassword)
}

type loginRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := h.service.Login(r.Context(), req.EmployeeID, req.Password); err != nil {
		h.logger.Warn("login failed", slog.String("employee_id", req.EmployeeID))
		httpx.FailError(w, "Invalid credentials", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Verification code sent",
	})
}

type verifyRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
}

func (h *Handler) verify2FA(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	token, err := h.service.Verify2FA(r.Context(), req.EmployeeID, req.Code)
	if err != nil {
		httpx.FailError(w, "Invalid or expired code", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
	})
}

type setPasswordRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
}

func (h *Handler) setPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := h.service.SetPassword(r.Context(), req.EmployeeID, req.Password); err != nil {
		httpx.FailError(w, "Could not set password", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password updated",
	})
}
