package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// NovelSortField 小说列表排序字段
type NovelSortField string

const (
	NovelSortUpdatedAt NovelSortField = "updatedAt"
	NovelSortCreatedAt NovelSortField = "createdAt"
	NovelSortTitle     NovelSortField = "title"
)

// ParseNovelSortField 解析排序字段，未知值回落到 updatedAt
func ParseNovelSortField(s string) NovelSortField {
	switch NovelSortField(s) {
	case NovelSortCreatedAt, NovelSortTitle:
		return NovelSortField(s)
	default:
		return NovelSortUpdatedAt
	}
}

// NovelFilter 小说过滤条件
type NovelFilter struct {
	// Search 在标题与简介中不区分大小写匹配
	Search string
	Status entity.Status
	Tag    string
	Sort   NovelSortField
	Order  SortOrder
}

// NovelRepository 小说仓储接口
type NovelRepository interface {
	// Create 创建小说
	Create(ctx context.Context, novel *entity.Novel) error

	// GetByID 根据 ID 获取小说，不存在时返回 nil
	GetByID(ctx context.Context, id string) (*entity.Novel, error)

	// GetForUpdate 在事务内读取并锁定小说行，不存在时返回 nil
	GetForUpdate(ctx context.Context, id string) (*entity.Novel, error)

	// Update 更新小说
	Update(ctx context.Context, novel *entity.Novel) error

	// UpdateStats 写入统计字段与推导状态
	UpdateStats(ctx context.Context, id string, stats entity.NovelStats, status entity.Status) error

	// Delete 删除小说
	Delete(ctx context.Context, id string) error

	// List 获取小说列表
	List(ctx context.Context, filter *NovelFilter) ([]*entity.Novel, error)
}
