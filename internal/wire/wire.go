//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/config"
	"novel-studio-api/internal/infrastructure/llm"
	"novel-studio-api/internal/infrastructure/persistence/postgres"
	"novel-studio-api/internal/interfaces/http/handler"
	"novel-studio-api/internal/interfaces/http/router"
	"novel-studio-api/internal/workflow/chain"
	"novel-studio-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		DataSet,
		RedisSet,
		ServiceSet,
		LLMSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializePostgres 仅初始化 PostgreSQL 客户端（用于 bootstrap）
func InitializePostgres(cfg *config.Config) (*postgres.Client, func(), error) {
	wire.Build(ProvidePostgresClient)
	return nil, nil, nil
}

// DataSet 仓储提供者集合
var DataSet = wire.NewSet(
	ProvideRepositories,
	wire.FieldsOf(new(*Repositories), "Tx", "Novels", "Chapters", "Characters", "Outlines", "Worlds"),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideRateLimiter,
	ProvideStatsPublisher,
)

// ServiceSet 作品库服务集合
var ServiceSet = wire.NewSet(
	library.NewStatsService,
	library.NewNovelService,
	library.NewChapterService,
	library.NewCharacterService,
	library.NewOutlineService,
	library.NewWorldService,
)

// LLMSet 模型与 AI 助手集合
var LLMSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
	chain.NewTaskChain,
	ProvideAssistantService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	handler.NewNovelHandler,
	handler.NewChapterHandler,
	handler.NewCharacterHandler,
	handler.NewOutlineHandler,
	handler.NewWorldHandler,
	handler.NewAssistantHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
