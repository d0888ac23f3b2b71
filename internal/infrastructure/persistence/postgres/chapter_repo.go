// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"novel-studio-api/internal/domain/entity"
)

// ChapterRepository 章节仓储实现
type ChapterRepository struct {
	client *Client
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(client *Client) *ChapterRepository {
	return &ChapterRepository{client: client}
}

// Create 创建章节
func (r *ChapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取章节
func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetByID")
	defer span.End()

	if !isUUID(id) {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var chapter entity.Chapter
	if err := db.First(&chapter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &chapter, nil
}

// Update 更新章节
func (r *ChapterRepository) Update(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return nil
}

// Delete 删除章节
func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Chapter{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return nil
}

// DeleteByNovel 删除小说下全部章节
func (r *ChapterRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.DeleteByNovel")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("novel_id = ?", novelID).Delete(&entity.Chapter{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapters by novel: %w", err)
	}
	return nil
}

// ListByNovel 获取小说章节列表
func (r *ChapterRepository) ListByNovel(ctx context.Context, novelID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return []*entity.Chapter{}, nil
	}

	db := getDB(ctx, r.client.db)
	var chapters []*entity.Chapter
	if err := db.Where("novel_id = ?", novelID).
		Order("sort_order ASC, created_at ASC").
		Find(&chapters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// ListIDsByNovel 获取小说全部章节 ID
func (r *ChapterRepository) ListIDsByNovel(ctx context.Context, novelID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListIDsByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return []string{}, nil
	}

	db := getDB(ctx, r.client.db)
	var ids []string
	if err := db.Model(&entity.Chapter{}).Where("novel_id = ?", novelID).Pluck("id", &ids).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapter ids: %w", err)
	}
	return ids, nil
}

// AggregateByNovel 汇总字数与章节数
func (r *ChapterRepository) AggregateByNovel(ctx context.Context, novelID string) (entity.NovelStats, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.AggregateByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return entity.NovelStats{}, nil
	}

	db := getDB(ctx, r.client.db)
	var row struct {
		WordCount    int
		ChapterCount int
	}
	if err := db.Model(&entity.Chapter{}).
		Select("COALESCE(SUM(word_count), 0) AS word_count, COUNT(*) AS chapter_count").
		Where("novel_id = ?", novelID).
		Scan(&row).Error; err != nil {
		span.RecordError(err)
		return entity.NovelStats{}, fmt.Errorf("failed to aggregate chapters: %w", err)
	}
	return entity.NovelStats{WordCount: row.WordCount, ChapterCount: row.ChapterCount}, nil
}

// UpdateOrder 更新章节顺序
func (r *ChapterRepository) UpdateOrder(ctx context.Context, novelID, id string, order int) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.UpdateOrder")
	defer span.End()

	db := getDB(ctx, r.client.db)
	result := db.Model(&entity.Chapter{}).
		Where("id = ? AND novel_id = ?", id, novelID).
		Update("sort_order", order)
	if result.Error != nil {
		span.RecordError(result.Error)
		return fmt.Errorf("failed to update chapter order: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to update chapter order: chapter %s not in novel %s", id, novelID)
	}
	return nil
}

// GetNextOrder 获取下一个顺序号
func (r *ChapterRepository) GetNextOrder(ctx context.Context, novelID string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetNextOrder")
	defer span.End()

	if !isUUID(novelID) {
		return 1, nil
	}

	db := getDB(ctx, r.client.db)
	var maxOrder *int
	if err := db.Model(&entity.Chapter{}).
		Where("novel_id = ?", novelID).
		Select("MAX(sort_order)").
		Scan(&maxOrder).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get max chapter order: %w", err)
	}
	if maxOrder == nil {
		return 1, nil
	}
	return *maxOrder + 1, nil
}
