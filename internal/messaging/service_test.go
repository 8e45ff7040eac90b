package messaging

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/firedesk/timecard/internal/mailer"
	"github.com/firedesk/timecard/internal/shared"
)

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type memMessages struct {
	templates []Template
	history   []HistoryEntry
	recordErr error
}

func (m *memMessages) ListTemplates(_ context.Context) ([]Template, error) {
	return m.templates, nil
}

func (m *memMessages) GetTemplate(_ context.Context, id int64) (Template, error) {
	for _, tpl := range m.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return Template{}, shared.ErrNotFound
}

func (m *memMessages) RecordSend(_ context.Context, entry HistoryEntry) (HistoryEntry, error) {
	if m.recordErr != nil {
		return HistoryEntry{}, m.recordErr
	}
	entry.ID = int64(len(m.history) + 1)
	m.history = append(m.history, entry)
	return entry, nil
}

func newTestService(repo *memMessages, mail *fakeMailer) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewService(repo, mail, logger)
	svc.now = func() time.Time { return time.Date(2024, 9, 20, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestSendRecordsHistory(t *testing.T) {
	repo := &memMessages{}
	mail := &fakeMailer{}
	svc := newTestService(repo, mail)

	entry, err := svc.Send(context.Background(), SendRequest{
		EmployeeID: "891",
		Email:      "jsmith@firedesk.local",
		Subject:    "Timecard Reminder",
		Message:    "Hello John,\nPlease submit your timecard.",
		SentBy:     "A. Admin",
	})
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	require.Equal(t, "jsmith@firedesk.local", mail.sent[0].To)
	require.Equal(t, "Timecard Reminder", mail.sent[0].Subject)
	require.Equal(t, "Hello John,\nPlease submit your timecard.", mail.sent[0].Text)
	require.Equal(t, "Hello John,<br>Please submit your timecard.", mail.sent[0].HTML)

	require.Len(t, repo.history, 1)
	require.Equal(t, entry, repo.history[0])
	require.Equal(t, "891", entry.EmployeeID)
	require.Equal(t, "A. Admin", entry.SentBy)
	require.Equal(t, time.Date(2024, 9, 20, 8, 0, 0, 0, time.UTC), entry.SentAt)
}

func TestSendMailFailureWritesNoHistory(t *testing.T) {
	repo := &memMessages{}
	mail := &fakeMailer{err: errors.New("relay refused")}
	svc := newTestService(repo, mail)

	_, err := svc.Send(context.Background(), SendRequest{
		EmployeeID: "891",
		Email:      "jsmith@firedesk.local",
		Subject:    "Timecard Reminder",
		Message:    "ping",
		SentBy:     "A. Admin",
	})
	require.Error(t, err)
	require.Empty(t, repo.history)
}

func TestSendRecordFailureSurfaces(t *testing.T) {
	repo := &memMessages{recordErr: errors.New("db down")}
	mail := &fakeMailer{}
	svc := newTestService(repo, mail)

	_, err := svc.Send(context.Background(), SendRequest{
		EmployeeID: "891",
		Email:      "jsmith@firedesk.local",
		Subject:    "Timecard Reminder",
		Message:    "ping",
		SentBy:     "A. Admin",
	})
	require.Error(t, err)
	require.Len(t, mail.sent, 1)
}
