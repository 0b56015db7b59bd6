package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/atlas-biz/atlas/internal/analytics"
	"github.com/atlas-biz/atlas/internal/app"
	"github.com/atlas-biz/atlas/internal/enums"
	jobmetrics "github.com/atlas-biz/atlas/internal/jobs"
	"github.com/atlas-biz/atlas/internal/platform/cache"
	"github.com/atlas-biz/atlas/internal/platform/db"
	"github.com/atlas-biz/atlas/internal/products"
	"github.com/atlas-biz/atlas/jobs"
)

func main() {
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

	registry := enums.NewRegistry()
	analyticsCache := analytics.NewCache(redisClient, cfg.AnalyticsCacheTTL)
	analyticsService := analytics.NewService(analytics.NewRepository(pool), analyticsCache, registry)
	productsRepo := products.NewRepository(pool)

	metrics := jobmetrics.NewMetrics(nil)
	warmupJob := jobs.NewAnalyticsWarmupJob(analyticsService, logger, metrics)
	lowStockJob := jobs.NewLowStockScanJob(productsRepo, cfg.LowStockThreshold, logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAnalyticsWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskLowStockScan, Handler: lowStockJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/10 * * * *", Task: jobs.NewAnalyticsWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 * * * *", Task: jobs.NewLowStockScanTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	// Prime the dashboard cache instead of waiting for the first cron tick.
	queue := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if _, err := queue.EnqueueAnalyticsWarmup(ctx); err != nil {
		logger.Warn("enqueue warmup", slog.Any("error", err))
	}
	if err := queue.Close(); err != nil {
		logger.Warn("queue close", slog.Any("error", err))
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
