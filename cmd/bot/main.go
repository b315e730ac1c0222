package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"homework_bot/internal/app"
	"homework_bot/internal/domain/homework"
	"homework_bot/internal/domain/notification"
	"homework_bot/internal/infra/config"
	idb "homework_bot/internal/infra/database"
	"homework_bot/internal/infra/logger"
	"homework_bot/internal/infra/practicum"
	"homework_bot/internal/infra/scheduler"
	"homework_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Could not load application configuration")
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		var missing *config.MissingVariableError
		if errors.As(err, &missing) {
			mainLogger.WithError(err).Fatal("Отсутствуют переменные среды! Программа завершена.")
		}
		mainLogger.WithError(err).Fatal("Application stopped with an error")
	}
	mainLogger.Info("Application shut down gracefully.")
}

// run validates cfg, wires the poller and blocks until ctx is cancelled.
// Secrets are checked before any client is built, so a bad config never
// reaches the network.
func run(ctx context.Context, cfg *config.AppConfig) error {
	mainLogger := logger.Component("main")

	if err := cfg.Validate(); err != nil {
		return err
	}
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %s", cfg.LogLevel, cfg.Environment, cfg.TelegramChatID)

	schedule, err := scheduler.New(cfg.RetrySpec, logger.Component("scheduler"))
	if err != nil {
		return err
	}
	mainLogger.Infof("Retry schedule: %s", schedule.Spec())

	// Initialize the optional notification journal
	var journal notification.Journal = notification.NopJournal{}
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("could not connect to database: %w", err)
		}
		defer db.Close()

		pgJournal := idb.NewPostgresJournal(db)
		schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err = pgJournal.EnsureSchema(schemaCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("could not prepare notification journal: %w", err)
		}
		journal = pgJournal
		mainLogger.Info("Notification journal enabled.")
	}

	// Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL)
	if err != nil {
		return err
	}
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), journal, cfg.TelegramChatID, logger.Component("notifier"))

	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.APITimeout, logger.Component("practicum"))

	cursor := cfg.FromDate
	if cursor == 0 {
		cursor = time.Now().Unix()
	}

	poller := app.NewPoller(
		apiClient,
		homework.NewFormatter(homework.DefaultVerdicts()),
		notifier,
		schedule,
		cursor,
		logger.Component("poller"),
	)

	mainLogger.Info("Application setup complete. Poll loop is starting...")
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("poll loop stopped: %w", err)
	}
	return nil
}
