package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// WorldRepository 世界观仓储接口
type WorldRepository interface {
	Create(ctx context.Context, world *entity.WorldEntry) error
	GetByID(ctx context.Context, id string) (*entity.WorldEntry, error)
	Update(ctx context.Context, world *entity.WorldEntry) error
	Delete(ctx context.Context, id string) error
	DeleteByNovel(ctx context.Context, novelID string) error

	// List 按更新时间倒序，关键字匹配标题与内容
	List(ctx context.Context, filter KeywordFilter) ([]*entity.WorldEntry, error)

	// GetLatestByNovel 获取小说最近更新的世界观条目，不存在时返回 nil
	GetLatestByNovel(ctx context.Context, novelID string) (*entity.WorldEntry, error)
}
