// Package wire 提供依赖注入配置
package wire

import (
	"context"
	"fmt"

	"novel-studio-api/internal/application/assistant"
	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/config"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/infrastructure/llm"
	"novel-studio-api/internal/infrastructure/messaging"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	"novel-studio-api/internal/infrastructure/persistence/postgres"
	"novel-studio-api/internal/infrastructure/persistence/redis"
	"novel-studio-api/internal/interfaces/http/handler"
	"novel-studio-api/internal/interfaces/http/middleware"
	"novel-studio-api/internal/workflow/chain"
	"novel-studio-api/pkg/logger"
)

// Repositories 按存储驱动选择的仓储实现
type Repositories struct {
	Tx         repository.Transactor
	Novels     repository.NovelRepository
	Chapters   repository.ChapterRepository
	Characters repository.CharacterRepository
	Outlines   repository.OutlineRepository
	Worlds     repository.WorldRepository

	// Postgres memory 驱动下为 nil
	Postgres *postgres.Client
}

// ProvideRepositories 根据 database.driver 创建仓储
func ProvideRepositories(ctx context.Context, cfg *config.Config) (*Repositories, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn(ctx, "using in-memory store, data will not survive restarts")
		store := memory.NewStore()
		return &Repositories{
			Tx:         store,
			Novels:     memory.NewNovelRepository(store),
			Chapters:   memory.NewChapterRepository(store),
			Characters: memory.NewCharacterRepository(store),
			Outlines:   memory.NewOutlineRepository(store),
			Worlds:     memory.NewWorldRepository(store),
		}, func() {}, nil

	case config.DriverPostgres, "":
		client, cleanup, err := ProvidePostgresClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Features.AutoMigrate {
			if err := client.AutoMigrate(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		return &Repositories{
			Tx:         postgres.NewTxManager(client),
			Novels:     postgres.NewNovelRepository(client),
			Chapters:   postgres.NewChapterRepository(client),
			Characters: postgres.NewCharacterRepository(client),
			Outlines:   postgres.NewOutlineRepository(client),
			Worlds:     postgres.NewWorldRepository(client),
			Postgres:   client,
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional Redis 未启用或不可达时返回 nil，限流与事件发布随之关闭
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, rate limiting and novel events disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 提供 AI 接口限流器
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideStatsPublisher 提供小说统计事件发布者
func ProvideStatsPublisher(cfg *config.Config, client *redis.Client) library.StatsPublisher {
	stream := cfg.Messaging.RedisStream
	if client == nil || !cfg.Features.NovelEvents || !stream.Enabled {
		return nil
	}
	return messaging.NewProducer(client.Redis(), messaging.Stream(stream.NovelEvents), stream.MaxLen)
}

// ProvideAssistantService 提供 AI 写作助手服务
func ProvideAssistantService(cfg *config.Config, taskChain *chain.TaskChain, factory *llm.EinoFactory) *assistant.Service {
	return assistant.NewService(taskChain, factory, cfg.LLM.DefaultProvider)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, repos *Repositories, redisClient *redis.Client) *handler.HealthHandler {
	checks := map[string]handler.HealthChecker{"postgres": nil, "redis": nil}
	if repos.Postgres != nil {
		checks["postgres"] = repos.Postgres
	}
	if redisClient != nil {
		checks["redis"] = redisClient
	}
	return handler.NewHealthHandler(cfg.App.Version, checks)
}
