package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

// OutlineRepository 大纲仓储实现
type OutlineRepository struct {
	client *Client
}

// NewOutlineRepository 创建大纲仓储
func NewOutlineRepository(client *Client) *OutlineRepository {
	return &OutlineRepository{client: client}
}

// Create 创建大纲
func (r *OutlineRepository) Create(ctx context.Context, outline *entity.Outline) error {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(outline).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create outline: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取大纲
func (r *OutlineRepository) GetByID(ctx context.Context, id string) (*entity.Outline, error) {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.GetByID")
	defer span.End()

	if !isUUID(id) {
		return nil, nil
	}

	var outline entity.Outline
	if err := getDB(ctx, r.client.db).First(&outline, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get outline: %w", err)
	}
	return &outline, nil
}

// Update 更新大纲
func (r *OutlineRepository) Update(ctx context.Context, outline *entity.Outline) error {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.Update")
	defer span.End()

	if err := getDB(ctx, r.client.db).Save(outline).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update outline: %w", err)
	}
	return nil
}

// Delete 删除大纲
func (r *OutlineRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.Delete")
	defer span.End()

	if err := getDB(ctx, r.client.db).Delete(&entity.Outline{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete outline: %w", err)
	}
	return nil
}

// DeleteByNovel 删除小说下全部大纲
func (r *OutlineRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.DeleteByNovel")
	defer span.End()

	if err := getDB(ctx, r.client.db).Where("novel_id = ?", novelID).Delete(&entity.Outline{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete outlines by novel: %w", err)
	}
	return nil
}

// List 获取大纲列表
func (r *OutlineRepository) List(ctx context.Context, filter repository.KeywordFilter) ([]*entity.Outline, error) {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.List")
	defer span.End()

	if filter.NovelID != "" && !isUUID(filter.NovelID) {
		return []*entity.Outline{}, nil
	}

	query := getDB(ctx, r.client.db).Model(&entity.Outline{})
	if filter.NovelID != "" {
		query = query.Where("novel_id = ?", filter.NovelID)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := containsPattern(kw)
		query = query.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
	}

	var outlines []*entity.Outline
	if err := query.Order("sort_order ASC, created_at ASC").
		Limit(repository.OutlineTake.Clamp(filter.Take)).
		Find(&outlines).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list outlines: %w", err)
	}
	return outlines, nil
}

// ListByNovel 获取小说全部大纲
func (r *OutlineRepository) ListByNovel(ctx context.Context, novelID string) ([]*entity.Outline, error) {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.ListByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return []*entity.Outline{}, nil
	}

	var outlines []*entity.Outline
	if err := getDB(ctx, r.client.db).Where("novel_id = ?", novelID).
		Order("sort_order ASC, created_at ASC").
		Find(&outlines).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list outlines by novel: %w", err)
	}
	return outlines, nil
}

// CountByNovel 统计小说下的大纲数量
func (r *OutlineRepository) CountByNovel(ctx context.Context, novelID string) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.OutlineRepository.CountByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return 0, nil
	}

	var count int64
	if err := getDB(ctx, r.client.db).Model(&entity.Outline{}).Where("novel_id = ?", novelID).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count outlines: %w", err)
	}
	return count, nil
}
