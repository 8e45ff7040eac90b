package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/firedesk/timecard/internal/app"
	"github.com/firedesk/timecard/internal/auth"
	"github.com/firedesk/timecard/internal/docstore"
	"github.com/firedesk/timecard/internal/employee"
	"github.com/firedesk/timecard/internal/kronos"
	"github.com/firedesk/timecard/internal/mailer"
	"github.com/firedesk/timecard/internal/messaging"
	"github.com/firedesk/timecard/internal/observability"
	"github.com/firedesk/timecard/internal/pdfgen"
	"github.com/firedesk/timecard/internal/platform/cache"
	"github.com/firedesk/timecard/internal/platform/db"
	"github.com/firedesk/timecard/internal/stamp"
	"github.com/firedesk/timecard/internal/submission"
	"github.com/firedesk/timecard/internal/validation"
	"github.com/firedesk/timecard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	store, err := docstore.New(cfg.PDFStorageDir)
	if err != nil {
		logger.Error("open document store", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	queue := jobs.NewClient(cfg.RedisAddr)
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	smtp := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)

	employeeRepo := employee.NewRepository(dbpool)
	codeStore := auth.NewCodeStore(redisClient, cfg.TwoFATTL)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := auth.NewService(employeeRepo, codeStore, tokens, queue, logger)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Tokens: tokens}

	stamper := stamp.NewPDFCPU()

	validationRepo := validation.NewRepository(dbpool)
	validationEngine := validation.NewEngine(store, stamper, validationRepo, logger, metrics)
	validationHandler := validation.NewHandler(logger, validationEngine)

	submissionRepo := submission.NewRepository(dbpool)
	submissionEngine := submission.NewEngine(store, validationRepo, submissionRepo, smtp, logger)
	submissionHandler := submission.NewHandler(logger, submissionEngine)

	docstoreHandler := docstore.NewHandler(logger, store, cfg.FinanceEmail)

	messagingRepo := messaging.NewRepository(dbpool)
	messagingService := messaging.NewService(messagingRepo, smtp, logger)
	messagingHandler := messaging.NewHandler(logger, messagingService)

	kronosClient := kronos.NewClient(cfg.KronosBaseURL, cfg.KronosAPIKey, cfg.KronosTimeout)
	employeeHandler := employee.NewHandler(logger, kronosClient, employeeRepo)
	pdfHandler := pdfgen.NewHandler(logger, kronosClient, queue, store)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		ValidationHandler: validationHandler,
		SubmissionHandler: submissionHandler,
		DocStoreHandler:   docstoreHandler,
		MessagingHandler:  messagingHandler,
		EmployeeHandler:   employeeHandler,
		PDFHandler:        pdfHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
