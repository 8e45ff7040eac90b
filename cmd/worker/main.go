package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/firedesk/timecard/internal/app"
	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/mailer"
	"github.com/firedesk/timecard/internal/observability"
	"github.com/firedesk/timecard/internal/pdfgen"
	"github.com/firedesk/timecard/internal/platform/db"
	"github.com/firedesk/timecard/internal/validation"
	"github.com/firedesk/timecard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	store, err := docstore.New(cfg.PDFStorageDir)
	if err != nil {
		logger.Error("open document store", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	mailJob := jobs.NewMailJob(smtp, logger)

	pdfClient := pdfgen.NewGotenbergClient(cfg.GotenbergURL)
	renderer, err := pdfgen.NewRenderer(pdfClient)
	if err != nil {
		logger.Error("init timecard renderer", slog.Any("error", err))
		os.Exit(1)
	}
	generateJob := pdfgen.NewJob(renderer, store, logger)

	validationRepo := validation.NewRepository(pool)
	reconcileJob := jobs.NewReconcileJob(store, validationRepo, metrics, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSendMail, Handler: mailJob.Handle},
			{Type: jobs.TaskTypeGenerate, Handler: generateJob.Handle},
			{Type: jobs.TaskTypeReconcile, Handler: reconcileJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "@every 1h", Task: jobs.NewReconcileTask(), Options: []asynq.Option{asynq.MaxRetry(2)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
