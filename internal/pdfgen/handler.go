package pdfgen

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/kronos"
	"github.com/firedesk/timecard/internal/platform/httpx"
	"github.com/firedesk/timecard/internal/shared"
	"github.com/firedesk/timecard/jobs"
)

// payrollEpoch anchors the organization's 14-day pay period grid.
var payrollEpoch = time.Date(2024, time.September, 9, 0, 0, 0, 0, time.UTC)

var nonFolderChars = regexp.MustCompile(`[^0-9_]`)

// Handler wires the employee-facing timecard generation endpoints.
type Handler struct {
	logger   *slog.Logger
	kronos   *kronos.Client
	queue    *jobs.Client
	store    *docstore.Store
	validate *validator.Validate
}

// NewHandler constructs a Handler value.
func NewHandler(logger *slog.Logger, kc *kronos.Client, queue *jobs.Client, store *docstore.Store) *Handler {
	return &Handler{logger: logger, kronos: kc, queue: queue, store: store, validate: validator.New()}
}

// MountRoutes registers HTTP routes on an authenticated router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/generate", h.generate)
	r.Post("/submit-signed", h.submitSigned)
	r.Get("/timecards/{employeeId}", h.history)
}

type generateRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	PayPeriod  string `json:"payPeriod" validate:"required,oneof=previous current next"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	offset := 0
	switch req.PayPeriod {
	case "previous":
		offset = -1
	case "next":
		offset = 1
	}
	period := shared.CurrentPayPeriod(time.Now().UTC(), payrollEpoch, offset)
	parts := strings.SplitN(shared.PayPeriodLabel(period), " to ", 2)

	data, err := h.kronos.Schedule(r.Context(), req.EmployeeID, parts[0], parts[1])
	if err != nil {
		h.logger.Error("kronos schedule fetch",
			slog.String("employee_id", req.EmployeeID),
			slog.Any("error", err))
		httpx.FailError(w, "Error generating timecard.", err)
		return
	}
	if len(data.Entries) == 0 {
		httpx.Fail(w, http.StatusNotFound, "No schedule data found for the selected period", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

type submitSignedRequest struct {
	EmployeeID   string              `json:"employeeId" validate:"required"`
	PayPeriod    string              `json:"payPeriod" validate:"required"`
	Signature    Signature           `json:"signature" validate:"required"`
	TimecardData kronos.ScheduleData `json:"timecardData" validate:"required"`
}

// folderFromLabel turns "2024-09-09 to 2024-09-22" into the store key.
func folderFromLabel(label string) string {
	return nonFolderChars.ReplaceAllString(strings.Replace(label, " to ", "__", 1), "")
}

func (h *Handler) submitSigned(w http.ResponseWriter, r *http.Request) {
	var req submitSignedRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request", err)
		return
	}

	folder := req.PayPeriod
	if !shared.ValidPayPeriod(folder) {
		folder = folderFromLabel(req.PayPeriod)
	}
	if err := shared.CheckPayPeriod(folder); err != nil {
		httpx.FailError(w, "Invalid pay period", err)
		return
	}

	task, err := jobs.NewGenerateTask(jobs.GeneratePayload{
		EmployeeID:    req.EmployeeID,
		PayPeriod:     folder,
		SignatureName: req.Signature.Name,
		SignatureDate: req.Signature.Date,
		Data:          req.TimecardData,
	})
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error generating signed timecard", err)
		return
	}
	if err := h.queue.Enqueue(r.Context(), task); err != nil {
		h.logger.Error("enqueue timecard generation", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "Error generating signed timecard", err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Signed timecard submitted successfully",
		"filename": docstore.UnvalidatedName(req.EmployeeID, folder),
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	entries, err := h.store.EmployeeHistory(employeeID, 10)
	if err != nil {
		h.logger.Error("timecard history", slog.String("employee_id", employeeID), slog.Any("error", err))
		httpx.FailError(w, "Error fetching timecard history", err)
		return
	}
	if entries == nil {
		entries = []docstore.HistoryEntry{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timecards": entries,
	})
}
