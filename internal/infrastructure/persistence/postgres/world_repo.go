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

// WorldRepository 世界观仓储实现
type WorldRepository struct {
	client *Client
}

// NewWorldRepository 创建世界观仓储
func NewWorldRepository(client *Client) *WorldRepository {
	return &WorldRepository{client: client}
}

// Create 创建世界观条目
func (r *WorldRepository) Create(ctx context.Context, world *entity.WorldEntry) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(world).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create world entry: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取世界观条目
func (r *WorldRepository) GetByID(ctx context.Context, id string) (*entity.WorldEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.GetByID")
	defer span.End()

	if !isUUID(id) {
		return nil, nil
	}

	var world entity.WorldEntry
	if err := getDB(ctx, r.client.db).First(&world, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get world entry: %w", err)
	}
	return &world, nil
}

// Update 更新世界观条目
func (r *WorldRepository) Update(ctx context.Context, world *entity.WorldEntry) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.Update")
	defer span.End()

	if err := getDB(ctx, r.client.db).Save(world).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update world entry: %w", err)
	}
	return nil
}

// Delete 删除世界观条目
func (r *WorldRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.Delete")
	defer span.End()

	if err := getDB(ctx, r.client.db).Delete(&entity.WorldEntry{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete world entry: %w", err)
	}
	return nil
}

// DeleteByNovel 删除小说下全部世界观条目
func (r *WorldRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.DeleteByNovel")
	defer span.End()

	if err := getDB(ctx, r.client.db).Where("novel_id = ?", novelID).Delete(&entity.WorldEntry{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete world entries by novel: %w", err)
	}
	return nil
}

// List 获取世界观条目列表
func (r *WorldRepository) List(ctx context.Context, filter repository.KeywordFilter) ([]*entity.WorldEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.List")
	defer span.End()

	if filter.NovelID != "" && !isUUID(filter.NovelID) {
		return []*entity.WorldEntry{}, nil
	}

	query := getDB(ctx, r.client.db).Model(&entity.WorldEntry{})
	if filter.NovelID != "" {
		query = query.Where("novel_id = ?", filter.NovelID)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := containsPattern(kw)
		query = query.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
	}

	var worlds []*entity.WorldEntry
	if err := query.Order("updated_at DESC").
		Limit(repository.WorldTake.Clamp(filter.Take)).
		Find(&worlds).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list world entries: %w", err)
	}
	return worlds, nil
}

// GetLatestByNovel 获取小说最近更新的世界观条目
func (r *WorldRepository) GetLatestByNovel(ctx context.Context, novelID string) (*entity.WorldEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldRepository.GetLatestByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return nil, nil
	}

	var world entity.WorldEntry
	if err := getDB(ctx, r.client.db).Where("novel_id = ?", novelID).
		Order("updated_at DESC").
		First(&world).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get latest world entry: %w", err)
	}
	return &world, nil
}
