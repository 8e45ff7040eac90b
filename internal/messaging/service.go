package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firedesk/timecard/internal/mailer"
)

// SendRequest is one outbound message addressed to a single employee.
type SendRequest struct {
	EmployeeID string
	Email      string
	Subject    string
	Message    string
	SentBy     string
}

// Service delivers messages and records the history. The history row is
// written only after the transport accepts the message, so a failed send
// never shows up as delivered.
type Service struct {
	repo   Repository
	mail   mailer.Mailer
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a Service value.
func NewService(repo Repository, mail mailer.Mailer, logger *slog.Logger) *Service {
	return &Service{repo: repo, mail: mail, logger: logger, now: time.Now}
}

// Templates lists all canned templates, default first by name order.
func (s *Service) Templates(ctx context.Context) ([]Template, error) {
	return s.repo.ListTemplates(ctx)
}

// Template fetches one template by id.
func (s *Service) Template(ctx context.Context, id int64) (Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

// Send delivers the message and records it in the history.
func (s *Service) Send(ctx context.Context, req SendRequest) (HistoryEntry, error) {
	msg := mailer.Message{
		To:      req.Email,
		Subject: req.Subject,
		Text:    req.Message,
		HTML:    strings.ReplaceAll(req.Message, "\n", "<br>"),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return HistoryEntry{}, fmt.Errorf("messaging: send to %s: %w", req.EmployeeID, err)
	}

	entry, err := s.repo.RecordSend(ctx, HistoryEntry{
		EmployeeID: req.EmployeeID,
		Subject:    req.Subject,
		Message:    req.Message,
		SentBy:     req.SentBy,
		SentAt:     s.now(),
	})
	if err != nil {
		// Delivered but unrecorded; surface the error so the operator knows
		// the history is short one row.
		return HistoryEntry{}, err
	}

	s.logger.Info("message sent",
		slog.String("employee_id", req.EmployeeID),
		slog.String("sent_by", req.SentBy),
		slog.String("subject", req.Subject))
	return entry, nil
}
