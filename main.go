package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"home-affordability/config"
	httpLayer "home-affordability/http"
	"home-affordability/observability"
	"home-affordability/repository"
	"home-affordability/service"
)

func main() {
	cfg := config.Load()

	logger := observability.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup happens before main exits.
func run(cfg config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	scenarios, closeScenarios, err := newScenarioRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeScenarios()

	affordabilityService := service.NewAffordabilityService(scenarios, cache, cfg.Defaults, metrics, logger)
	termComparisonService := service.NewTermComparisonService(affordabilityService)
	loanService := service.NewLoanService(metrics)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterDeps{
		Affordability: httpLayer.NewAffordabilityHandler(affordabilityService, termComparisonService),
		Loan:          httpLayer.NewLoanHandler(loanService),
		RateLimiter:   rateLimiter,
		Metrics:       metrics,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("affordability API listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newCache prefers Redis and falls back to an in-process cache when Redis is
// not configured or not reachable.
func newCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(cfg.CacheTTL), func() {}
	}

	redisCache := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CacheTTL,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		_ = redisCache.Close()
		return repository.NewMemoryCache(cfg.CacheTTL), func() {}
	}

	logger.Info("connected to redis", "addr", cfg.RedisAddr)
	return redisCache, func() { _ = redisCache.Close() }
}

func newScenarioRepository(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
) (repository.ScenarioRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		return repository.NewScenarioRepositoryMemory(), func() {}, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	repo, err := repository.NewScenarioRepositoryPostgres(dbCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	logger.Info("connected to database")
	return repo, func() { _ = repo.Close() }, nil
}
