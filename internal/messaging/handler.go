package messaging

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/firedesk/timecard/internal/platform/httpx"
	"github.com/firedesk/timecard/internal/shared"
)

// Handler wires the messaging endpoints of the admin API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler value.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers HTTP routes on an authenticated admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/message-templates", h.templates)
	r.Get("/message-templates/{templateID}", h.template)
	r.Post("/send-message", h.send)
}

func (h *Handler) templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.Templates(r.Context())
	if err != nil {
		h.logger.Error("list message templates", slog.Any("error", err))
		httpx.FailError(w, "Error loading message templates", err)
		return
	}
	if templates == nil {
		templates = []Template{}
	}
	httpx.JSON(w, http.StatusOK, templates)
}

func (h *Handler) template(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "templateID"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid template id", err)
		return
	}
	tpl, err := h.service.Template(r.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "Template not found", err)
			return
		}
		h.logger.Error("load message template", slog.Int64("id", id), slog.Any("error", err))
		httpx.FailError(w, "Error loading message template", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tpl)
}

type sendMessageRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Subject    string `json:"subject" validate:"required"`
	Message    string `json:"message" validate:"required"`
	SentBy     string `json:"sentBy" validate:"required"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	if _, err := h.service.Send(r.Context(), SendRequest{
		EmployeeID: req.EmployeeID,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		SentBy:     req.SentBy,
	}); err != nil {
		h.logger.Error("send message", slog.String("employee_id", req.EmployeeID), slog.Any("error", err))
		httpx.FailError(w, "Error sending message", err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent successfully",
	})
}
