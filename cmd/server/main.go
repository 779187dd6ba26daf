package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mcoot/sequencegame/internal/api"
	"github.com/mcoot/sequencegame/internal/factory"
	redisstorage "github.com/mcoot/sequencegame/internal/storage/redis"
)

const (
	// How often finished matches and idle event hubs are swept
	sweepInterval = time.Minute
	// How long a finished match stays viewable
	finishedMatchTTL = 30 * time.Minute
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		if raw := os.Getenv("SUMMARY_TTL_HOURS"); raw != "" {
			hours, err := strconv.Atoi(raw)
			if err != nil || hours < 0 {
				logger.Error("invalid SUMMARY_TTL_HOURS", slog.String("value", raw))
				os.Exit(1)
			}
			redisCfg.SummaryTTL = time.Duration(hours) * time.Hour
		}
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	serverConfig, err := api.LoadServerConfig(os.LookupEnv)
	if err != nil {
		logger.Error("invalid server config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	server := api.NewServer(app.Router(), serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go sweep(ctx, app, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// sweep drops old finished matches and event hubs nobody is watching
func sweep(ctx context.Context, app *factory.App, logger *slog.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := app.MatchService.Prune(ctx, finishedMatchTTL)
			closed := app.HubManager.CleanupEmptyHubs()
			if len(removed) > 0 || len(closed) > 0 {
				logger.Debug("sweep finished",
					slog.Int("matches_removed", len(removed)),
					slog.Int("hubs_closed", len(closed)))
			}
		}
	}
}
