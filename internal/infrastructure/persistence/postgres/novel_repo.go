package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

var novelSortColumns = map[repository.NovelSortField]string{
	repository.NovelSortUpdatedAt: "updated_at",
	repository.NovelSortCreatedAt: "created_at",
	repository.NovelSortTitle:     "title",
}

// NovelRepository 小说仓储实现
type NovelRepository struct {
	client *Client
}

// NewNovelRepository 创建小说仓储
func NewNovelRepository(client *Client) *NovelRepository {
	return &NovelRepository{client: client}
}

// Create 创建小说
func (r *NovelRepository) Create(ctx context.Context, novel *entity.Novel) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(novel).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create novel: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取小说
func (r *NovelRepository) GetByID(ctx context.Context, id string) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.GetByID")
	defer span.End()

	novel, err := firstNovel(getDB(ctx, r.client.db), id)
	if err != nil {
		span.RecordError(err)
	}
	return novel, err
}

// GetForUpdate 锁定小说行，须在事务中调用
func (r *NovelRepository) GetForUpdate(ctx context.Context, id string) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.GetForUpdate")
	defer span.End()

	db := getDB(ctx, r.client.db).Clauses(clause.Locking{Strength: "UPDATE"})
	novel, err := firstNovel(db, id)
	if err != nil {
		span.RecordError(err)
	}
	return novel, err
}

func firstNovel(db *gorm.DB, id string) (*entity.Novel, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var novel entity.Novel
	if err := db.First(&novel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get novel: %w", err)
	}
	return &novel, nil
}

// Update 更新小说
func (r *NovelRepository) Update(ctx context.Context, novel *entity.Novel) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(novel).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update novel: %w", err)
	}
	return nil
}

// UpdateStats 写入统计字段
func (r *NovelRepository) UpdateStats(ctx context.Context, id string, stats entity.NovelStats, status entity.Status) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.UpdateStats")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.Novel{}).Where("id = ?", id).Updates(map[string]any{
		"word_count":    stats.WordCount,
		"chapter_count": stats.ChapterCount,
		"status":        status,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update novel stats: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update novel stats: novel %s not found", id)
	}
	return nil
}

// Delete 删除小说
func (r *NovelRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Novel{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete novel: %w", err)
	}
	return nil
}

// List 获取小说列表
func (r *NovelRepository) List(ctx context.Context, filter *repository.NovelFilter) ([]*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.List")
	defer span.End()

	if filter == nil {
		filter = &repository.NovelFilter{}
	}

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Novel{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("? = ANY(tags)", tag)
	}

	column, ok := novelSortColumns[filter.Sort]
	if !ok {
		column = novelSortColumns[repository.NovelSortUpdatedAt]
	}
	order := filter.Order
	if order != repository.SortOrderAsc {
		order = repository.SortOrderDesc
	}

	var novels []*entity.Novel
	if err := query.Order(fmt.Sprintf("%s %s", column, order)).Find(&novels).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list novels: %w", err)
	}
	return novels, nil
}
