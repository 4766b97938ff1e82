package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-alert-bot/internal/config"
	"stock-alert-bot/internal/dedup"
	delivery "stock-alert-bot/internal/delivery/http"
	"stock-alert-bot/internal/engine"
	"stock-alert-bot/internal/repository"
	"stock-alert-bot/internal/service"
	"stock-alert-bot/pkg/logger"
	"stock-alert-bot/pkg/markethours"
	"stock-alert-bot/pkg/redis"
	"stock-alert-bot/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the stock alert service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Stock Alert Service", logger.Field("name", cfg.App.Name))

	// Market hours schedule
	open := cfg.MarketHours.Open
	if open == "" {
		open = "09:15"
	}
	closeTime := cfg.MarketHours.Close
	if closeTime == "" {
		closeTime = "15:30"
	}
	timezone := cfg.MarketHours.Timezone
	if timezone == "" {
		timezone = "Asia/Kolkata"
	}
	hours, err := markethours.NewSchedule(open, closeTime, timezone)
	if err != nil {
		appLogger.Fatal("Invalid market hours configuration", logger.ErrorField(err))
	}

	// Deduplication store
	var seen dedup.Store
	switch cfg.Dedup.Store {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		seen = dedup.NewRedisStore(redisClient, cfg.Dedup.Retention)
	default:
		seen = dedup.NewMemoryStore(cfg.Dedup.Retention)
	}

	// Polarity scorer
	var scorer engine.PolarityScorer
	switch cfg.Sentiment.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		geminiScorer, err := repository.NewGeminiScorerRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini scorer", logger.ErrorField(err))
		}
		scorer = geminiScorer
	default:
		scorer = engine.NewVaderScorer()
	}

	// Repositories
	marketRepo := repository.NewMarketAPIRepository(cfg, appLogger)
	var newsRepo repository.NewsRepository
	if cfg.RSS.Enabled && len(cfg.RSS.FeedURLs) > 0 {
		newsRepo = repository.NewRSSNewsRepository(cfg, appLogger)
	}

	// Telegram client
	telegramClient, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram client", logger.ErrorField(err))
	}

	// Engine
	engineCfg := engine.DefaultConfig()
	if cfg.Engine.VolumeSpikeThreshold > 0 {
		engineCfg.VolumeSpikeThreshold = cfg.Engine.VolumeSpikeThreshold
	}
	assembler := engine.NewAssembler(scorer, engineCfg, seen, appLogger)

	// Services
	stats := service.NewStatsTracker(time.Now().In(hours.Location()))
	watchlist := service.NewWatchlist()
	alertSvc := service.NewAlertService(cfg, appLogger, marketRepo, newsRepo, assembler, telegramClient, hours, stats)
	reportSvc := service.NewReportService(appLogger, marketRepo, telegramClient, hours)
	schedulerSvc := service.NewSchedulerService(cfg, appLogger, alertSvc, reportSvc, hours)
	botSvc := service.NewBotService(appLogger, telegramClient, marketRepo, hours, stats, watchlist)

	go botSvc.Start(ctx)
	go func() {
		if err := schedulerSvc.Start(ctx); err != nil {
			appLogger.Error("Scheduler failed", logger.ErrorField(err))
			stop()
		}
	}()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	statusHandler := delivery.NewStatusHandler(cfg, appLogger, stats, hours)
	statusHandler.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "alert-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing alert-service CLI: %s\n", err)
		os.Exit(1)
	}
}
