package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linguahouse/internal/config"
	"linguahouse/internal/handler"
	"linguahouse/internal/middleware"
	"linguahouse/internal/scheduler"
	"linguahouse/internal/service"
	"linguahouse/internal/storage"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Linguahouse Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully", zap.String("db_driver", cfg.Database.Driver))

	// Connect to database and run migrations
	store, err := storage.Open(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()

	// Initialize services
	authService := service.NewAuthService(store.Users, cfg.BotPassword)
	profileService := service.NewProfileService(store.Profiles, logger)
	cardService := service.NewCardService(store.Cards, logger)
	learningService := service.NewLearningService(store.Cards, store.Profiles, logger)
	statsService := service.NewStatsService(store.Cards, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler failed", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, profileService, cardService, learningService, statsService, logger)
	h.RegisterHandlers(middleware.AuthMiddleware(authService, logger))

	logger.Info("Handlers registered")

	// Drop abandoned learning sessions in background
	jobs := scheduler.New(h, cfg.SessionIdleTimeout, scheduler.DefaultSweepInterval, logger)
	if err := jobs.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	jobs.Stop()

	logger.Info("Bot stopped gracefully")
}
