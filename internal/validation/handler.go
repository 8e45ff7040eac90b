package validation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/firedesk/timecard/internal/platform/httpx"
)

// Handler wires the validation endpoints of the admin API.
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
	r.Post("/validate-timecard", h.validateBatch)
	r.Post("/validate-all", h.validateAll)
	r.Post("/unvalidate-all", h.unvalidateAll)
	r.Get("/validation-status/{folder}", h.status)
}

type validateRequest struct {
	EmployeeIDs   []string  `json:"employeeIds" validate:"required,min=1,dive,required"`
	Folder        string    `json:"folder" validate:"required"`
	ValidatorInfo Validator `json:"validatorInfo" validate:"required"`
}

type unvalidateRequest struct {
	Folder string `json:"folder" validate:"required"`
}

func (h *Handler) validateBatch(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	h.logger.Info("starting timecard validation",
		slog.String("pay_period", req.Folder),
		slog.Int("count", len(req.EmployeeIDs)),
		slog.String("validator", req.ValidatorInfo.Name))

	results, err := h.engine.Validate(r.Context(), req.Folder, req.EmployeeIDs, req.ValidatorInfo)
	if err != nil {
		h.logger.Error("validation error", slog.Any("error", err))
		httpx.FailError(w, "Error during validation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
	})
}

func (h *Handler) validateAll(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	results, summary, err := h.engine.ValidateAll(r.Context(), req.Folder, req.EmployeeIDs, req.ValidatorInfo)
	if err != nil {
		h.logger.Error("batch validation error", slog.Any("error", err))
		httpx.FailError(w, "Error during batch validation", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
		"summary": summary,
	})
}

func (h *Handler) unvalidateAll(w http.ResponseWriter, r *http.Request) {
	var req unvalidateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if _, err := h.engine.UnvalidateAll(r.Context(), req.Folder); err != nil {
		h.logger.Error("unvalidate all error", slog.Any("error", err))
		httpx.FailError(w, "Error unvalidating timecards", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "All timecards unvalidated successfully",
	})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	validations, err := h.engine.Status(r.Context(), folder)
	if err != nil {
		httpx.FailError(w, "Error fetching validation status", err)
		return
	}
	if validations == nil {
		validations = []Record{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"validations": validations,
	})
}
