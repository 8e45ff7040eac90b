package employee

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/firedesk/timecard/internal/kronos"
	"github.com/firedesk/timecard/internal/platform/httpx"
)

// Handler exposes the employee-administration endpoints of the admin API:
// the live Kronos directory, the roster sync, and a CSV export of the
// local roster.
type Handler struct {
	logger *slog.Logger
	kronos *kronos.Client
	repo   Repository
}

// NewHandler constructs a Handler value.
func NewHandler(logger *slog.Logger, kc *kronos.Client, repo Repository) *Handler {
	return &Handler{logger: logger, kronos: kc, repo: repo}
}

// MountRoutes registers HTTP routes on an authenticated admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/employees", h.directory)
	r.Post("/sync", h.sync)
	r.Get("/export", h.export)
}

func (h *Handler) directory(w http.ResponseWriter, r *http.Request) {
	people, err := h.kronos.People(r.Context())
	if err != nil {
		h.logger.Error("fetch employee directory", slog.Any("error", err))
		httpx.FailError(w, "Failed to fetch employees", err)
		return
	}
	if people == nil {
		people = []kronos.Person{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"employees": people,
	})
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	people, err := h.kronos.People(r.Context())
	if err != nil {
		h.logger.Error("roster sync fetch", slog.Any("error", err))
		httpx.FailError(w, "Sync failed", err)
		return
	}

	roster := make([]Employee, 0, len(people))
	for _, p := range people {
		email := p.Email
		if email == "N/A" {
			email = ""
		}
		roster = append(roster, Employee{
			EmployeeID: p.EmployeeID,
			Name:       strings.TrimSpace(p.FirstName + " " + p.LastName),
			Email:      email,
			Rank:       p.Position,
		})
	}
	count, err := h.repo.UpsertRoster(r.Context(), roster)
	if err != nil {
		h.logger.Error("roster sync upsert", slog.Int64("upserted", count), slog.Any("error", err))
		httpx.FailError(w, "Sync failed", err)
		return
	}

	h.logger.Info("roster sync complete", slog.Int64("count", count))
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Sync completed",
		"count":   count,
	})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	roster, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("roster export", slog.Any("error", err))
		httpx.FailError(w, "Export failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Employee ID", "Name", "Rank", "Email", "Admin"})
	for _, e := range roster {
		_ = cw.Write([]string{e.EmployeeID, e.Name, e.Rank, e.Email, strconv.FormatBool(e.Admin)})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("roster export write", slog.Any("error", err))
	}
}
