package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"rider_slip_service/internal/app"
	"rider_slip_service/internal/domain/commission"
	"rider_slip_service/internal/domain/notify"
	"rider_slip_service/internal/infra/config"
	idb "rider_slip_service/internal/infra/database"
	"rider_slip_service/internal/infra/httpapi"
	"rider_slip_service/internal/infra/logger"
	"rider_slip_service/internal/infra/scheduler"
	"rider_slip_service/internal/infra/storage"
	"rider_slip_service/internal/infra/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"dedup_scope": cfg.DedupScope,
		"week_window": cfg.WeekWindow,
	}).Info("Configuration loaded")

	// Database
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	log.Info("Database connection established")

	// Repositories and collaborators
	branchRepo := idb.NewPostgresBranchRepository(db)
	slipRepo := idb.NewPostgresSlipRepository(db)
	crRepo := idb.NewPostgresChangeRequestRepository(db)
	registry := idb.NewPostgresDedupRegistry(db)
	artifactStore := storage.NewDiskStore(cfg.ArtifactDir)

	// Admin notifier: telegram if configured, otherwise a no-op.
	var notifier notify.Notifier = telegram.NopNotifier{}
	if cfg.TelegramToken != "" && cfg.AdminChatID != 0 {
		bot, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				log.WithError(err).Error("Telegram error")
			},
		})
		if err != nil {
			log.WithError(err).Fatal("Could not create Telegram bot")
		}
		notifier = telegram.NewNotifier(bot, cfg.AdminChatID)
		log.Info("Telegram admin notifications enabled")
	} else {
		log.Info("Telegram notifications disabled (no token/chat configured)")
	}

	// Services
	rates := commission.RateTable{
		CashPerSlip:   cfg.RateCashMinor,
		OnlinePerSlip: cfg.RateOnlineMinor,
	}
	intakeService := app.NewIntakeService(
		registry, artifactStore, rates, cfg.DedupScope, cfg.WeekWindow,
		log.WithField("service", "intake"),
	)
	submissionService := app.NewSubmissionService(
		intakeService, slipRepo, branchRepo, crRepo, notifier,
		log.WithField("service", "submission"),
	)
	adminService := app.NewAdminService(
		branchRepo, slipRepo, crRepo,
		log.WithField("service", "admin"),
	)
	reminderService := app.NewReminderService(
		crRepo, notifier,
		log.WithField("service", "reminder"),
	)

	// Scheduler
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		log.WithField("component", "scheduler"),
		cfg.CronSpecWeekOpen,
		cfg.CronSpecDigest,
	)
	reminderScheduler.Start()

	// HTTP API
	auth := httpapi.NewAuthenticator(branchRepo, cfg.AdminSecret, log.WithField("component", "auth"))
	slipHandler := httpapi.NewSlipHandler(submissionService, adminService, intakeService, log.WithField("handler", "slips"))
	adminHandler := httpapi.NewAdminHandler(adminService, log.WithField("handler", "admin"))
	router := httpapi.NewRouter(auth, slipHandler, adminHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application")
	reminderScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}
	log.Info("Application shut down gracefully")
}
