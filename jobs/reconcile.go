package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/observability"
	"github.com/firedesk/timecard/internal/validation"
)

// ReconcileJob sweeps the document store against the validation ledger: a
// validated file must have exactly one ledger row and vice versa. A crash
// between a file rename and the ledger write can break that agreement; the
// sweep surfaces it instead of letting it rot silently.
type ReconcileJob struct {
	store   *docstore.Store
	repo    validation.Repository
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewReconcileJob constructs a ReconcileJob handler.
func NewReconcileJob(store *docstore.Store, repo validation.Repository, metrics *observability.Metrics, logger *slog.Logger) *ReconcileJob {
	return &ReconcileJob{store: store, repo: repo, metrics: metrics, logger: logger}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *ReconcileJob) Handle(ctx context.Context, _ *asynq.Task) error {
	drift, periods, err := j.sweep(ctx)
	if err != nil {
		return err
	}
	j.metrics.SetLedgerDrift(drift)
	if drift > 0 {
		j.logger.Warn("store/ledger reconcile found drift", slog.Int("drift", drift))
	} else {
		j.logger.Info("store/ledger reconcile clean", slog.Int("periods", periods))
	}
	return nil
}

func (j *ReconcileJob) sweep(ctx context.Context) (int, int, error) {
	periods, err := j.store.ListPeriods()
	if err != nil {
		return 0, 0, err
	}

	drift := 0
	for _, period := range periods {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		records, err := j.repo.ListByPeriod(ctx, period)
		if err != nil {
			return 0, 0, err
		}
		ledgered := make(map[string]bool, len(records))
		for _, rec := range records {
			ledgered[rec.Filename] = true
			if err := j.store.VerifyFile(j.store.ValidatedPath(rec.EmployeeID, rec.PayPeriod)); err != nil {
				drift++
				j.logger.Warn("ledger row without validated file",
					slog.String("pay_period", period),
					slog.String("employee_id", rec.EmployeeID),
					slog.Any("error", err))
			}
		}

		files, _, err := j.store.ListDocuments(period)
		if err != nil {
			return 0, 0, err
		}
		for _, f := range files {
			if docstore.StateOf(f) == docstore.StateValidated && !ledgered[f] {
				drift++
				j.logger.Warn("validated file without ledger row",
					slog.String("pay_period", period),
					slog.String("filename", f))
			}
		}
	}

	return drift, len(periods), nil
}
