package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/observability"
	"github.com/firedesk/timecard/internal/shared"
	"github.com/firedesk/timecard/internal/stamp"
)

// maxConcurrentTransitions bounds the fan-out of a validation batch. Each
// employee's pipeline is an independent read-stamp-write-rename on a distinct
// file, so overlapping them is safe as long as per-key locks hold.
const maxConcurrentTransitions = 8

// Engine drives document state transitions: unvalidated to validated and back,
// keeping the filesystem and the validation ledger in agreement. Within one
// employee's pipeline ordering is strict: the stamped copy is written and
// verified before the original is deleted, and the ledger row is written last.
type Engine struct {
	store   *docstore.Store
	stamper stamp.Stamper
	repo    Repository
	locks   *shared.KeyedMutex
	logger  *slog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// NewEngine constructs a validation Engine. metrics may be nil.
func NewEngine(store *docstore.Store, stamper stamp.Stamper, repo Repository, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		store:   store,
		stamper: stamper,
		repo:    repo,
		locks:   shared.NewKeyedMutex(),
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Validate stamps and renames the unvalidated document of every listed
// employee, recording a ledger row per success. Failures are per-item: one
// employee's error never aborts the others.
func (e *Engine) Validate(ctx context.Context, payPeriod string, employeeIDs []string, v Validator) ([]ItemResult, error) {
	if err := shared.CheckPayPeriod(payPeriod); err != nil {
		return nil, err
	}

	results := make([]ItemResult, len(employeeIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTransitions)
	for i, employeeID := range employeeIDs {
		g.Go(func() error {
			if err := e.validateOne(gctx, payPeriod, employeeID, v); err != nil {
				e.logger.Error("validate timecard",
					slog.String("employee_id", employeeID),
					slog.String("pay_period", payPeriod),
					slog.Any("error", err))
				e.metrics.ObserveTransition("validate", false)
				results[i] = ItemResult{EmployeeID: employeeID, Success: false, Message: err.Error(), Error: err.Error()}
				return nil
			}
			e.metrics.ObserveTransition("validate", true)
			results[i] = ItemResult{EmployeeID: employeeID, Success: true, Message: "Timecard validated successfully"}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

// ValidateAll is Validate plus a batch summary.
func (e *Engine) ValidateAll(ctx context.Context, payPeriod string, employeeIDs []string, v Validator) ([]ItemResult, Summary, error) {
	results, err := e.Validate(ctx, payPeriod, employeeIDs, v)
	if err != nil {
		return nil, Summary{}, err
	}
	sum := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			sum.Validated++
		} else {
			sum.Failed++
		}
	}
	e.logger.Info("batch validation completed",
		slog.String("pay_period", payPeriod),
		slog.Int("total", sum.Total),
		slog.Int("validated", sum.Validated),
		slog.Int("failed", sum.Failed))
	return results, sum, nil
}

func (e *Engine) validateOne(ctx context.Context, payPeriod, employeeID string, v Validator) error {
	key := shared.TransitionLockKey(employeeID, payPeriod)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	src := e.store.UnvalidatedPath(employeeID, payPeriod)
	dst := e.store.ValidatedPath(employeeID, payPeriod)

	if err := e.store.VerifyFile(src); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			if e.store.VerifyFile(dst) == nil {
				return fmt.Errorf("validation: employee %s: already validated: %w", employeeID, shared.ErrInvalidState)
			}
			return fmt.Errorf("validation: employee %s: timecard not found: %w", employeeID, shared.ErrNotFound)
		}
		return err
	}

	stamped := stamp.Validation{Name: v.Name, Rank: v.Rank, Date: e.now()}
	if err := e.stamper.Apply(ctx, src, dst, stamped); err != nil {
		return err
	}
	if err := e.store.VerifyFile(dst); err != nil {
		// Never leave a half-written validated copy behind.
		_ = os.Remove(dst)
		return err
	}
	if err := e.store.Remove(src); err != nil {
		return err
	}

	_, err := e.repo.Upsert(ctx, Record{
		EmployeeID:     employeeID,
		PayPeriod:      payPeriod,
		ValidatedBy:    v.Name,
		ValidatorRank:  v.Rank,
		ValidationDate: stamped.Date,
		Filename:       docstore.ValidatedName(employeeID, payPeriod),
	})
	return err
}

// UnvalidateAll reverses every validated document of a pay period back to the
// unvalidated state. Each ledger row is deleted immediately after its document
// revert succeeds, so a mid-loop failure leaves no row pointing at a deleted
// file. Any failure aborts the remainder and propagates.
func (e *Engine) UnvalidateAll(ctx context.Context, payPeriod string) (int, error) {
	if err := shared.CheckPayPeriod(payPeriod); err != nil {
		return 0, err
	}
	records, err := e.repo.ListByPeriod(ctx, payPeriod)
	if err != nil {
		return 0, err
	}

	reverted := 0
	for _, rec := range records {
		if err := e.unvalidateOne(ctx, rec); err != nil {
			e.metrics.ObserveTransition("unvalidate", false)
			return reverted, fmt.Errorf("validation: unvalidate employee %s: %w", rec.EmployeeID, err)
		}
		e.metrics.ObserveTransition("unvalidate", true)
		reverted++
	}
	e.logger.Info("unvalidated pay period",
		slog.String("pay_period", payPeriod),
		slog.Int("reverted", reverted))
	return reverted, nil
}

func (e *Engine) unvalidateOne(ctx context.Context, rec Record) error {
	key := shared.TransitionLockKey(rec.EmployeeID, rec.PayPeriod)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	src := e.store.ValidatedPath(rec.EmployeeID, rec.PayPeriod)
	dst := e.store.UnvalidatedPath(rec.EmployeeID, rec.PayPeriod)

	if err := e.store.VerifyFile(src); err != nil {
		return err
	}
	if err := e.stamper.Remove(ctx, src, dst); err != nil {
		return err
	}
	if err := e.store.VerifyFile(dst); err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := e.store.Remove(src); err != nil {
		return err
	}
	return e.repo.Delete(ctx, rec.EmployeeID, rec.PayPeriod)
}

// Status lists the validation ledger for a pay period.
func (e *Engine) Status(ctx context.Context, payPeriod string) ([]Record, error) {
	if err := shared.CheckPayPeriod(payPeriod); err != nil {
		return nil, err
	}
	return e.repo.ListByPeriod(ctx, payPeriod)
}
