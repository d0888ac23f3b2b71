package repository

import (
	"context"

	"novel-studio-api/internal/domain/entity"
)

// CharacterRepository 角色仓储接口
type CharacterRepository interface {
	Create(ctx context.Context, character *entity.Character) error
	GetByID(ctx context.Context, id string) (*entity.Character, error)
	Update(ctx context.Context, character *entity.Character) error
	Delete(ctx context.Context, id string) error
	DeleteByNovel(ctx context.Context, novelID string) error

	// List 按更新时间倒序，关键字匹配名称与描述
	List(ctx context.Context, filter KeywordFilter) ([]*entity.Character, error)

	// ListByNovel 按创建时间倒序
	ListByNovel(ctx context.Context, novelID string) ([]*entity.Character, error)
}
