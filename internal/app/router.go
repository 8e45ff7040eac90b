package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/firedesk/timecard/internal/auth"
	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/employee"
	"github.com/firedesk/timecard/internal/messaging"
	"github.com/firedesk/timecard/internal/observability"
	"github.com/firedesk/timecard/internal/pdfgen"
	"github.com/firedesk/timecard/internal/submission"
	"github.com/firedesk/timecard/internal/validation"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthHandler       *auth.Handler
	AuthMiddleware    auth.Middleware
	ValidationHandler *validation.Handler
	SubmissionHandler *submission.Handler
	DocStoreHandler   *docstore.Handler
	MessagingHandler  *messaging.Handler
	EmployeeHandler   *employee.Handler
	PDFHandler        *pdfgen.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router for the timecard service.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(20, time.Minute))
		params.AuthHandler.MountRoutes(r)
	})

	r.Route("/api/pdf", func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAuth)
		params.PDFHandler.MountRoutes(r)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAuth)
		r.Use(params.AuthMiddleware.RequireAdmin)
		params.ValidationHandler.MountRoutes(r)
		params.SubmissionHandler.MountRoutes(r)
		params.DocStoreHandler.MountRoutes(r)
		params.MessagingHandler.MountRoutes(r)
		params.EmployeeHandler.MountRoutes(r)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
