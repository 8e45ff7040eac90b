package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/mailer"
	"github.com/firedesk/timecard/internal/shared"
	"github.com/firedesk/timecard/internal/validation"
)

// Engine bundles the validated documents of a pay period into a zip, delivers
// it to finance by email and records the hand-off. The operation is
// all-or-nothing from the caller's view: no Record is written unless the
// archive was built and the transport accepted the message. The zip stays in
// the period directory as the durable audit copy.
type Engine struct {
	store       *docstore.Store
	validations validation.Repository
	repo        Repository
	mail        mailer.Mailer
	logger      *slog.Logger
	now         func() time.Time
}

// NewEngine constructs a submission Engine.
func NewEngine(store *docstore.Store, validations validation.Repository, repo Repository, mail mailer.Mailer, logger *slog.Logger) *Engine {
	return &Engine{
		store:       store,
		validations: validations,
		repo:        repo,
		mail:        mail,
		logger:      logger,
		now:         time.Now,
	}
}

// Request carries the parameters of one finance hand-off.
type Request struct {
	PayPeriod    string
	FinanceEmail string
	SentBy       string
	// Force bypasses the duplicate-send guard for an explicit resend.
	Force bool
}

// SendToFinance runs the submission workflow and returns the written Record.
func (e *Engine) SendToFinance(ctx context.Context, req Request) (Record, error) {
	if err := shared.CheckPayPeriod(req.PayPeriod); err != nil {
		return Record{}, err
	}

	if !req.Force {
		prior, err := e.repo.Latest(ctx, req.PayPeriod)
		if err != nil {
			return Record{}, err
		}
		if prior != nil {
			return Record{}, fmt.Errorf("submission: pay period %s sent at %s by %s: %w",
				req.PayPeriod, prior.SentAt.Format(time.RFC3339), prior.SentBy, shared.ErrAlreadySubmitted)
		}
	}

	records, err := e.validations.ListByPeriod(ctx, req.PayPeriod)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, fmt.Errorf("submission: pay period %s: %w", req.PayPeriod, shared.ErrNoValidated)
	}

	filenames := make([]string, 0, len(records))
	for _, rec := range records {
		filenames = append(filenames, rec.Filename)
	}
	archive, err := e.store.BuildArchive(ctx, req.PayPeriod, filenames)
	for _, skipped := range archive.Skipped {
		e.logger.Warn("validated file missing from store",
			slog.String("pay_period", req.PayPeriod),
			slog.String("filename", skipped))
	}
	if err != nil {
		return Record{}, err
	}

	msg := mailer.Message{
		To:      req.FinanceEmail,
		Subject: fmt.Sprintf("Timecard Submission - %s", req.PayPeriod),
		Text:    fmt.Sprintf("Please find attached the validated timecards for pay period %s.", req.PayPeriod),
		HTML: fmt.Sprintf(`<h2>Timecard Submission</h2>
<p>Please find attached the validated timecards for pay period %s.</p>
<p>Total timecards: %d</p>
<p>Sent by: %s</p>`, req.PayPeriod, len(records), req.SentBy),
		Attachments: []string{archive.Path},
	}
	if err := e.mail.Send(ctx, msg); err != nil {
		return Record{}, err
	}

	rec, err := e.repo.Insert(ctx, Record{
		Reference:      uuid.New(),
		PayPeriod:      req.PayPeriod,
		SentBy:         req.SentBy,
		SentAt:         e.now(),
		ValidatedCount: len(records),
		FinanceEmail:   req.FinanceEmail,
	})
	if err != nil {
		return Record{}, err
	}
	e.logger.Info("timecards sent to finance",
		slog.String("pay_period", req.PayPeriod),
		slog.String("reference", rec.Reference.String()),
		slog.Int("validated_count", rec.ValidatedCount))
	return rec, nil
}

// CheckSubmission reports whether a pay period was already sent.
func (e *Engine) CheckSubmission(ctx context.Context, payPeriod string) (Status, error) {
	if err := shared.CheckPayPeriod(payPeriod); err != nil {
		return Status{}, err
	}
	prior, err := e.repo.Latest(ctx, payPeriod)
	if err != nil {
		return Status{}, err
	}
	if prior == nil {
		return Status{}, nil
	}
	sentAt := prior.SentAt
	return Status{AlreadySent: true, SentAt: &sentAt, SentBy: prior.SentBy}, nil
}
