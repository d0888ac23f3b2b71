package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// OutlineRepository 大纲仓储接口
type OutlineRepository interface {
	Create(ctx context.Context, outline *entity.Outline) error
	GetByID(ctx context.Context, id string) (*entity.Outline, error)
	Update(ctx context.Context, outline *entity.Outline) error
	Delete(ctx context.Context, id string) error
	DeleteByNovel(ctx context.Context, novelID string) error

	// List 按 order 升序，关键字匹配标题与内容
	List(ctx context.Context, filter KeywordFilter) ([]*entity.Outline, error)

	// ListByNovel 返回小说的全部大纲，按 order 升序，不受 take 上限约束
	ListByNovel(ctx context.Context, novelID string) ([]*entity.Outline, error)

	// CountByNovel 统计小说下的大纲数量
	CountByNovel(ctx context.Context, novelID string) (int64, error)
}
