package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rivalbet/settlement-service/internal/cache"
	"github.com/rivalbet/settlement-service/internal/config"
	httpHandler "github.com/rivalbet/settlement-service/internal/handler/http"
	"github.com/rivalbet/settlement-service/internal/messaging"
	"github.com/rivalbet/settlement-service/internal/notify"
	"github.com/rivalbet/settlement-service/internal/service"
	"github.com/rivalbet/settlement-service/internal/sportsdata"
	"github.com/rivalbet/settlement-service/internal/store"
)

func main() {
	// Load configuration
	configPath := os.Getenv("SETTLEMENT_CONFIG")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("starting settlement-service")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create document store
	docStore := store.New(store.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	defer docStore.Close()

	if err := docStore.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	// Create API response cache (separate logical use of the same Redis)
	apiCache := cache.NewRedisCache(cache.RedisCacheConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTLs: map[cache.Category]time.Duration{
			cache.CategoryOdds:  cfg.SportsData.OddsTTL,
			cache.CategoryGames: cfg.SportsData.GamesTTL,
			cache.CategoryNews:  cfg.SportsData.NewsTTL,
			cache.CategoryStats: cfg.SportsData.StatsTTL,
		},
	}, logger)
	defer apiCache.Close()

	// Create notifier
	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Notify.GatewayURL != "" {
		notifier = notify.NewGatewayNotifier(cfg.Notify.GatewayURL, cfg.Notify.Timeout, logger)
	}

	// Create services
	settlementService := service.NewSettlementService(docStore, notifier, logger)
	combatService := service.NewCombatService(docStore, notifier, logger)
	leaderboardService := service.NewLeaderboardService(docStore, cfg.Leaderboard.DailyMaxAge, cfg.Leaderboard.DefaultMaxAge, logger)
	walletService := service.NewWalletService(docStore, notifier, cfg.Wallet.AllowanceAmount, cfg.Wallet.AllowanceInterval, logger)
	logger.Info().Msg("services initialized")

	// Create sports data client
	sportsClient := sportsdata.NewClient(sportsdata.Config{
		PrimaryURL:  cfg.SportsData.PrimaryURL,
		FallbackURL: cfg.SportsData.FallbackURL,
		APIKey:      cfg.SportsData.APIKey,
		Timeout:     cfg.SportsData.Timeout,
	}, apiCache, logger)

	// Create Kafka consumers
	gameConsumer := messaging.NewGameResultConsumer(messaging.KafkaConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.GameResultsTopic,
		GroupID: cfg.Kafka.GroupID,
	}, settlementService, logger)
	defer gameConsumer.Close()

	fightConsumer := messaging.NewFightResultConsumer(messaging.KafkaConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.FightResultsTopic,
		GroupID: cfg.Kafka.GroupID,
	}, combatService, logger)
	defer fightConsumer.Close()

	go func() {
		if err := gameConsumer.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("game result consumer failed")
		}
	}()
	go func() {
		if err := fightConsumer.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("fight result consumer failed")
		}
	}()

	// Periodic jobs: trigger rechecks, leaderboard refreshes, allowance sweeps
	go runTicker(ctx, cfg.Settlement.RecheckInterval, func(now time.Time) {
		combatService.RecheckUnsettled(ctx, now)
	})
	go runTicker(ctx, cfg.Leaderboard.RefreshInterval, func(now time.Time) {
		leaderboardService.RefreshAll(ctx, now)
	})
	go runTicker(ctx, cfg.Wallet.SweepInterval, func(now time.Time) {
		if _, err := walletService.SweepAllowances(ctx, now); err != nil {
			logger.Error().Err(err).Msg("allowance sweep failed")
		}
	})

	// Initialize HTTP handlers
	settlementHandler := httpHandler.NewSettlementHandler(
		settlementService, combatService, leaderboardService, walletService,
		cfg.Server.AdminToken, logger,
	)
	sportsHandler := httpHandler.NewSportsHandler(sportsClient, logger)
	logger.Info().Msg("HTTP handlers initialized")

	// Setup HTTP server routes
	mux := http.NewServeMux()

	// Health and monitoring endpoints
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		readyHandler(w, r, docStore)
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Register API routes
	settlementHandler.RegisterRoutes(mux)
	sportsHandler.RegisterRoutes(mux)
	logger.Info().Msg("API routes registered")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start HTTP server in goroutine
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully...")

	// Cancel context to stop consumers and tickers
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	logger.Info().Msg("shutdown complete")
}

// runTicker runs fn on the interval until the context is cancelled.
func runTicker(ctx context.Context, interval time.Duration, fn func(now time.Time)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fn(now.UTC())
		}
	}
}

// setupLogger configures the logger based on config
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set format
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return log.Logger.With().Str("service", "settlement").Logger()
}

// healthHandler returns 200 if service is running
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// readyHandler returns 200 if service is ready to accept traffic
func readyHandler(w http.ResponseWriter, r *http.Request, s *store.Store) {
	// Check Redis connection
	if err := s.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Redis unavailable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
