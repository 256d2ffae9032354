package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/user/event-aggregator/internal/adapter/api"
	"github.com/user/event-aggregator/internal/adapter/api/middleware"
	"github.com/user/event-aggregator/internal/adapter/metrics"
	"github.com/user/event-aggregator/internal/adapter/provider"
	"github.com/user/event-aggregator/internal/adapter/repository/postgres"
	redisrepo "github.com/user/event-aggregator/internal/adapter/repository/redis"
	"github.com/user/event-aggregator/internal/domain"
	"github.com/user/event-aggregator/internal/pkg/config"
	"github.com/user/event-aggregator/internal/pkg/logger"
	"github.com/user/event-aggregator/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.NewAggregatorMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewEventRepository(db, log)

	// --- Optional Feed Cache ---
	var cache domain.FeedCache
	if cfg.RedisAddr != "" {
		redisOpts, err := goredis.ParseURL(cfg.RedisAddr)
		if err != nil {
			log.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := goredis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("could not connect to redis, feed caching disabled", "error", err)
		} else {
			cache = redisrepo.NewFeedCache(redisClient, log, cfg.FeedCacheTTL)
		}
	}

	// --- Provider Adapters ---
	providers := []domain.EventProvider{
		provider.NewTicketmaster(provider.TicketmasterConfig{
			APIKey:    cfg.TicketmasterAPIKey,
			Timeout:   cfg.ProviderTimeout,
			RateLimit: cfg.ProviderRateLimit,
		}, log),
		provider.NewSeatGeek(provider.SeatGeekConfig{
			ClientID:     cfg.SeatGeekClientID,
			ClientSecret: cfg.SeatGeekClientSecret,
			Timeout:      cfg.ProviderTimeout,
			RateLimit:    cfg.ProviderRateLimit,
		}, log),
		provider.NewEventbrite(provider.EventbriteConfig{
			APIKey:    cfg.EventbriteAPIKey,
			Timeout:   cfg.ProviderTimeout,
			RateLimit: cfg.ProviderRateLimit,
		}, log),
	}

	// --- Use Cases and Server ---
	aggregateUseCase := usecase.NewAggregateEventsUseCase(
		store, providers, cache, log, m,
		cfg.ProviderTimeout, cfg.DefaultRadiusMiles, cfg.MaxFeedResults,
	)

	router := api.NewRouter(log, aggregateUseCase, store)
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.Logging(log)(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		log.Info("starting event feed server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}

	log.Info("server shut down gracefully")
}
