package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/firedesk/timecard/internal/mailer"
)

// MailJob delivers queued transactional mail (2FA codes, notifications).
type MailJob struct {
	mail   mailer.Mailer
	logger *slog.Logger
}

// NewMailJob constructs a MailJob handler.
func NewMailJob(mail mailer.Mailer, logger *slog.Logger) *MailJob {
	return &MailJob{mail: mail, logger: logger}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *MailJob) Handle(ctx context.Context, task *asynq.Task) error {
	var payload SendMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.To == "" {
		return asynq.SkipRetry
	}
	if err := j.mail.Send(ctx, mailer.Message{
		To:      payload.To,
		Subject: payload.Subject,
		Text:    payload.Text,
		HTML:    payload.HTML,
	}); err != nil {
		j.logger.Error("send queued mail", slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	j.logger.Info("queued mail delivered", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return nil
}
