// Package main 小说事件消费者入口（event-worker）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"novel-studio-api/internal/config"
	"novel-studio-api/internal/infrastructure/messaging"
	"novel-studio-api/internal/infrastructure/persistence/redis"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName:    "event-worker",
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Env,
		Endpoint:       cfg.Observability.Tracing.Endpoint,
		SampleRate:     cfg.Observability.Tracing.SampleRate,
		Enabled:        cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	streamCfg := cfg.Messaging.RedisStream
	if !cfg.Cache.Redis.Enabled || !streamCfg.Enabled {
		logger.Warn(ctx, "redis stream disabled, event-worker has nothing to consume")
		return
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to init redis", err)
	}
	defer func() { _ = redisClient.Close() }()

	consumer := messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:       messaging.Stream(streamCfg.NovelEvents),
		Group:        streamCfg.ConsumerGroup,
		ConsumerName: consumerName(),
		BlockTimeout: streamCfg.BlockTimeout,
		ReclaimIdle:  streamCfg.ReclaimIdle,
		RetryLimit:   streamCfg.RetryLimit,
	})
	projection := messaging.NewStatsProjection(redisClient.Redis(), 0)
	consumer.RegisterHandler(messaging.TypeNovelStatsUpdated, projection.Handle)

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start consumer", err)
	}

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down event-worker...")
	consumer.Stop()
}

func consumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "event-worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
