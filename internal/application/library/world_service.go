package library

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novel-studio-api/internal/application/shared"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
)

// CreateWorldInput 创建世界观参数
type CreateWorldInput struct {
	NovelID string
	Title   string
	Content string
	Type    string
}

// Validate 校验创建参数
func (in CreateWorldInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.NovelID, shared.NotBlank("缺少 novelId 参数")),
		validation.Field(&in.Title, shared.NotBlank("标题和内容不能为空")),
		validation.Field(&in.Content, shared.NotBlank("标题和内容不能为空")),
	)
}

// UpdateWorldInput 更新世界观参数
type UpdateWorldInput struct {
	Title   *string
	Content *string
	Type    *string
}

// Validate 校验更新参数
func (in UpdateWorldInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, shared.NotBlank("标题不能为空")),
	)
}

// WorldService 世界观业务服务
type WorldService struct {
	tx     repository.Transactor
	novels repository.NovelRepository
	worlds repository.WorldRepository
}

// NewWorldService 创建世界观服务
func NewWorldService(tx repository.Transactor, novels repository.NovelRepository, worlds repository.WorldRepository) *WorldService {
	return &WorldService{tx: tx, novels: novels, worlds: worlds}
}

// List 按小说与关键字查询世界观
func (s *WorldService) List(ctx context.Context, filter repository.KeywordFilter) ([]*entity.WorldEntry, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Take = repository.WorldTake.Clamp(filter.Take)
	worlds, err := s.worlds.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return worlds, nil
}

// Create 创建世界观条目
func (s *WorldService) Create(ctx context.Context, in CreateWorldInput) (*entity.WorldEntry, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	world := entity.NewWorldEntry(in.NovelID, in.Title, in.Content, in.Type)
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := lockNovel(txCtx, s.novels, in.NovelID); err != nil {
			return err
		}
		if err := s.worlds.Create(txCtx, world); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return world, nil
}

// Update 部分更新世界观条目
func (s *WorldService) Update(ctx context.Context, id string, in UpdateWorldInput) (*entity.WorldEntry, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	world, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		world.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		world.Content = *in.Content
	}
	if in.Type != nil && strings.TrimSpace(*in.Type) != "" {
		world.Type = strings.TrimSpace(*in.Type)
	}

	if err := s.worlds.Update(ctx, world); err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return world, nil
}

// Delete 删除世界观条目
func (s *WorldService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.worlds.Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithError(err)
	}
	return nil
}

func (s *WorldService) get(ctx context.Context, id string) (*entity.WorldEntry, error) {
	world, err := s.worlds.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	if world == nil {
		return nil, apperrors.ErrWorldNotFound
	}
	return world, nil
}
