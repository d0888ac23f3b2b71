package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// Create 创建章节
	Create(ctx context.Context, chapter *entity.Chapter) error

	// GetByID 根据 ID 获取章节，不存在时返回 nil
	GetByID(ctx context.Context, id string) (*entity.Chapter, error)

	// Update 更新章节
	Update(ctx context.Context, chapter *entity.Chapter) error

	// Delete 删除章节
	Delete(ctx context.Context, id string) error

	// DeleteByNovel 删除小说下的全部章节
	DeleteByNovel(ctx context.Context, novelID string) error

	// ListByNovel 获取小说章节列表（按 order 升序）
	ListByNovel(ctx context.Context, novelID string) ([]*entity.Chapter, error)

	// ListIDsByNovel 获取小说全部章节 ID
	ListIDsByNovel(ctx context.Context, novelID string) ([]string, error)

	// AggregateByNovel 汇总小说全部章节的字数与章节数
	AggregateByNovel(ctx context.Context, novelID string) (entity.NovelStats, error)

	// UpdateOrder 更新章节顺序
	UpdateOrder(ctx context.Context, novelID, id string, order int) error

	// GetNextOrder 获取下一个顺序号（当前最大值 + 1）
	GetNextOrder(ctx context.Context, novelID string) (int, error)
}
