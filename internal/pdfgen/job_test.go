package pdfgen

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/kronos"
	"github.com/firedesk/timecard/jobs"
)

const testPeriod = "20240909__20240922"

func newTestJob(t *testing.T) (*Job, *docstore.Store) {
	t.Helper()
	store, err := docstore.New(t.TempDir())
	require.NoError(t, err)
	renderer, err := NewRenderer(&fakePDFClient{out: []byte("%PDF-1.7 rendered")})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewJob(renderer, store, logger), store
}

func generateTask(t *testing.T, payload jobs.GeneratePayload) *asynq.Task {
	t.Helper()
	task, err := jobs.NewGenerateTask(payload)
	require.NoError(t, err)
	return task
}

func TestJobStoresUnvalidatedTimecard(t *testing.T) {
	job, store := newTestJob(t)

	task := generateTask(t, jobs.GeneratePayload{
		EmployeeID:    "891",
		PayPeriod:     testPeriod,
		SignatureName: "J. Smith",
		SignatureDate: "2024-09-22",
		Data:          kronos.ScheduleData{EmployeeName: "J. Smith", GrandTotalHours: 48},
	})
	require.NoError(t, job.Handle(context.Background(), task))

	path := store.UnvalidatedPath("891", testPeriod)
	require.NoError(t, store.VerifyFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.7 rendered", string(data))
}

func TestJobSkipsValidatedTimecard(t *testing.T) {
	job, store := newTestJob(t)
	require.NoError(t, store.EnsurePeriodDir(testPeriod))
	require.NoError(t, os.WriteFile(store.ValidatedPath("891", testPeriod), []byte("stamped"), 0o644))

	task := generateTask(t, jobs.GeneratePayload{EmployeeID: "891", PayPeriod: testPeriod})
	err := job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)

	// No unvalidated sibling appeared.
	require.Error(t, store.VerifyFile(store.UnvalidatedPath("891", testPeriod)))
}

func TestJobRejectsMalformedPayload(t *testing.T) {
	job, _ := newTestJob(t)

	err := job.Handle(context.Background(), asynq.NewTask(jobs.TaskTypeGenerate, []byte("{not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)

	bad, err := json.Marshal(jobs.GeneratePayload{EmployeeID: "891", PayPeriod: "not-a-period"})
	require.NoError(t, err)
	err = job.Handle(context.Background(), asynq.NewTask(jobs.TaskTypeGenerate, bad))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
