package pdfgen

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/shared"
	"github.com/firedesk/timecard/jobs"
)

// Job renders queued signed timecards into the document store.
type Job struct {
	renderer *Renderer
	store    *docstore.Store
	logger   *slog.Logger
}

// NewJob constructs a Job handler.
func NewJob(renderer *Renderer, store *docstore.Store, logger *slog.Logger) *Job {
	return &Job{renderer: renderer, store: store, logger: logger}
}

// Handle fulfils the asynq.HandlerFunc contract. A timecard that was already
// validated is never regenerated: that would resurrect the unvalidated file
// next to the validated one.
func (j *Job) Handle(ctx context.Context, task *asynq.Task) error {
	var payload jobs.GeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.EmployeeID == "" || !shared.ValidPayPeriod(payload.PayPeriod) {
		return asynq.SkipRetry
	}

	validated := j.store.ValidatedPath(payload.EmployeeID, payload.PayPeriod)
	if j.store.VerifyFile(validated) == nil {
		j.logger.Warn("skipping generation for validated timecard",
			slog.String("employee_id", payload.EmployeeID),
			slog.String("pay_period", payload.PayPeriod))
		return asynq.SkipRetry
	}

	doc := Document{
		EmployeeID:      payload.EmployeeID,
		EmployeeName:    payload.Data.EmployeeName,
		EmployeeRank:    payload.Data.EmployeeRank,
		PayPeriodLabel:  shared.PayPeriodLabel(payload.PayPeriod),
		Entries:         payload.Data.Entries,
		WorkCodeTotals:  payload.Data.WorkCodeTotals,
		GrandTotalHours: payload.Data.GrandTotalHours,
		Signature:       Signature{Name: payload.SignatureName, Date: payload.SignatureDate},
	}
	pdf, err := j.renderer.Render(ctx, doc)
	if err != nil {
		return err
	}

	if err := j.store.EnsurePeriodDir(payload.PayPeriod); err != nil {
		return err
	}
	path := j.store.UnvalidatedPath(payload.EmployeeID, payload.PayPeriod)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return err
	}
	if err := j.store.VerifyFile(path); err != nil {
		return err
	}

	j.logger.Info("signed timecard stored",
		slog.String("employee_id", payload.EmployeeID),
		slog.String("pay_period", payload.PayPeriod),
		slog.Int("bytes", len(pdf)))
	return nil
}
