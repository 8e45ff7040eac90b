package submission

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/firedesk/timecard/internal/platform/httpx"
)

// Handler wires the submission endpoints of the admin API.
type Handler struct {
	logger   *slog.Logger
	engine   *Engine
	validate *validator.Validate
}

// NewHandler constructs a Handler value.
func NewHandler(logger *slog.Logger, engine *Engine) *Handler {
	return &Handler{logger: logger, engine: engine, validate: validator.New()}
}

// MountRoutes registers HTTP routes on an authenticated admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/send-to-finance", h.sendToFinance)
	r.Get("/check-submission/{folder}", h.checkSubmission)
}

type sendRequest struct {
	Folder       string `json:"folder" validate:"required"`
	FinanceEmail string `json:"financeEmail" validate:"required,email"`
	SentBy       string `json:"sentBy" validate:"required"`
	Force        bool   `json:"force"`
}

func (h *Handler) sendToFinance(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	rec, err := h.engine.SendToFinance(r.Context(), Request{
		PayPeriod:    req.Folder,
		FinanceEmail: req.FinanceEmail,
		SentBy:       req.SentBy,
		Force:        req.Force,
	})
	if err != nil {
		h.logger.Error("send to finance", slog.Any("error", err))
		httpx.FailError(w, "Error sending timecards to finance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"message":        "Timecards sent successfully",
		"validatedCount": rec.ValidatedCount,
	})
}

func (h *Handler) checkSubmission(w http.ResponseWriter, r *http.Request) {
	status, err := h.engine.CheckSubmission(r.Context(), chi.URLParam(r, "folder"))
	if err != nil {
		httpx.FailError(w, "Error checking submission status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, status)
}
