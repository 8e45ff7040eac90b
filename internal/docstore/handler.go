package docstore

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/firedesk/timecard/internal/platform/httpx"
	"github.com/firedesk/timecard/internal/shared"
)

// Handler exposes the document store browsing endpoints of the admin API.
type Handler struct {
	logger       *slog.Logger
	store        *Store
	financeEmail string
}

// NewHandler constructs a Handler value.
func NewHandler(logger *slog.Logger, store *Store, financeEmail string) *Handler {
	return &Handler{logger: logger, store: store, financeEmail: financeEmail}
}

// MountRoutes registers HTTP routes on an authenticated admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/folders", h.folders)
	r.Get("/timecards/{folder}", h.timecards)
	r.Get("/download/{folder}/{file}", h.download)
	r.Get("/config", h.config)
}

func (h *Handler) folders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.store.ListPeriods()
	if err != nil {
		h.logger.Error("list pay period folders", slog.Any("error", err))
		httpx.FailError(w, "Failed to read folders", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"folders": folders,
	})
}

func (h *Handler) timecards(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	if err := shared.CheckPayPeriod(folder); err != nil {
		httpx.FailError(w, "Invalid pay period", err)
		return
	}
	files, employeeIDs, err := h.store.ListDocuments(folder)
	if err != nil {
		h.logger.Error("list timecards", slog.String("pay_period", folder), slog.Any("error", err))
		httpx.FailError(w, "Failed to read timecards", err)
		return
	}
	if files == nil {
		files = []string{}
	}
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"timecards":       files,
		"signedEmployees": employeeIDs,
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	file := chi.URLParam(r, "file")

	path, err := h.store.ResolveDownload(folder, file)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Fail(w, http.StatusNotFound, "File not found", err)
			return
		}
		httpx.FailError(w, "Error accessing file", err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error streaming file", err)
		return
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		httpx.Fail(w, http.StatusInternalServerError, "Error streaming file", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	http.ServeContent(w, r, file, info.ModTime(), f)
}

func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"financeEmail": h.financeEmail,
	})
}
