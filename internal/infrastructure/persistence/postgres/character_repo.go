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

// CharacterRepository 角色仓储实现
type CharacterRepository struct {
	client *Client
}

// NewCharacterRepository 创建角色仓储
func NewCharacterRepository(client *Client) *CharacterRepository {
	return &CharacterRepository{client: client}
}

// Create 创建角色
func (r *CharacterRepository) Create(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(character).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取角色
func (r *CharacterRepository) GetByID(ctx context.Context, id string) (*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.GetByID")
	defer span.End()

	if !isUUID(id) {
		return nil, nil
	}

	var character entity.Character
	if err := getDB(ctx, r.client.db).First(&character, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &character, nil
}

// Update 更新角色
func (r *CharacterRepository) Update(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Update")
	defer span.End()

	if err := getDB(ctx, r.client.db).Save(character).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// Delete 删除角色
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Delete")
	defer span.End()

	if err := getDB(ctx, r.client.db).Delete(&entity.Character{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// DeleteByNovel 删除小说下全部角色
func (r *CharacterRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.DeleteByNovel")
	defer span.End()

	if err := getDB(ctx, r.client.db).Where("novel_id = ?", novelID).Delete(&entity.Character{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete characters by novel: %w", err)
	}
	return nil
}

// List 获取角色列表
func (r *CharacterRepository) List(ctx context.Context, filter repository.KeywordFilter) ([]*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.List")
	defer span.End()

	if filter.NovelID != "" && !isUUID(filter.NovelID) {
		return []*entity.Character{}, nil
	}

	query := getDB(ctx, r.client.db).Model(&entity.Character{})
	if filter.NovelID != "" {
		query = query.Where("novel_id = ?", filter.NovelID)
	}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		pattern := containsPattern(kw)
		query = query.Where("(name ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	var characters []*entity.Character
	if err := query.Order("updated_at DESC").
		Limit(repository.CharacterTake.Clamp(filter.Take)).
		Find(&characters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// ListByNovel 获取小说全部角色
func (r *CharacterRepository) ListByNovel(ctx context.Context, novelID string) ([]*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.ListByNovel")
	defer span.End()

	if !isUUID(novelID) {
		return []*entity.Character{}, nil
	}

	var characters []*entity.Character
	if err := getDB(ctx, r.client.db).Where("novel_id = ?", novelID).
		Order("created_at DESC").
		Find(&characters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list characters by novel: %w", err)
	}
	return characters, nil
}
