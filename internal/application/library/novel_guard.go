package library

import (
	"context"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
)

// ensureNovel 检查子资源所属的小说是否存在
func ensureNovel(ctx context.Context, novels repository.NovelRepository, novelID string) error {
	novel, err := novels.GetByID(ctx, novelID)
	if err != nil {
		return apperrors.ErrDatabase.WithError(err)
	}
	if novel == nil {
		return apperrors.ErrNovelNotFound
	}
	return nil
}

// lockNovel 在事务中锁定小说，不存在时返回 404。
// 写入子资源前加锁，与删除小说互斥，避免产生孤儿记录
func lockNovel(ctx context.Context, novels repository.NovelRepository, novelID string) (*entity.Novel, error) {
	novel, err := novels.GetForUpdate(ctx, novelID)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	if novel == nil {
		return nil, apperrors.ErrNovelNotFound
	}
	return novel, nil
}
