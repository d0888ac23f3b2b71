package library

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novel-studio-api/internal/application/shared"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/tracer"
)

// CreateOutlineInput 创建大纲参数
type CreateOutlineInput struct {
	NovelID      string
	Title        string
	Content      string
	ChapterRange string
	Order        *int
}

// Validate 校验创建参数
func (in CreateOutlineInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.NovelID, shared.NotBlank("缺少 novelId 参数")),
		validation.Field(&in.Title, shared.NotBlank("标题和内容不能为空")),
		validation.Field(&in.Content, shared.NotBlank("标题和内容不能为空")),
	)
}

// UpdateOutlineInput 更新大纲参数
type UpdateOutlineInput struct {
	Title        *string
	Content      *string
	ChapterRange *string
	Order        *int
}

// Validate 校验更新参数
func (in UpdateOutlineInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, shared.NotBlank("标题不能为空")),
	)
}

// OutlineService 大纲业务服务
type OutlineService struct {
	tx       repository.Transactor
	novels   repository.NovelRepository
	outlines repository.OutlineRepository
}

// NewOutlineService 创建大纲服务
func NewOutlineService(tx repository.Transactor, novels repository.NovelRepository, outlines repository.OutlineRepository) *OutlineService {
	return &OutlineService{tx: tx, novels: novels, outlines: outlines}
}

// List 按小说与关键字查询大纲（order 升序）
func (s *OutlineService) List(ctx context.Context, filter repository.KeywordFilter) ([]*entity.Outline, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Take = repository.OutlineTake.Clamp(filter.Take)
	outlines, err := s.outlines.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return outlines, nil
}

// Create 创建大纲，未指定 order 时追加到末尾
func (s *OutlineService) Create(ctx context.Context, in CreateOutlineInput) (*entity.Outline, error) {
	ctx, span := tracer.Start(ctx, "library.OutlineService.Create")
	defer span.End()

	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	var outline *entity.Outline
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := lockNovel(txCtx, s.novels, in.NovelID); err != nil {
			return err
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else {
			count, err := s.outlines.CountByNovel(txCtx, in.NovelID)
			if err != nil {
				return apperrors.ErrDatabase.WithError(err)
			}
			order = int(count) + 1
		}

		outline = entity.NewOutline(in.NovelID, in.Title, in.Content, order)
		outline.ChapterRange = strings.TrimSpace(in.ChapterRange)
		if err := s.outlines.Create(txCtx, outline); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	return outline, nil
}

// Update 部分更新大纲
func (s *OutlineService) Update(ctx context.Context, id string, in UpdateOutlineInput) (*entity.Outline, error) {
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	outline, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		outline.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		outline.Content = *in.Content
	}
	assignTrimmed(&outline.ChapterRange, in.ChapterRange)
	if in.Order != nil {
		outline.Order = *in.Order
	}

	if err := s.outlines.Update(ctx, outline); err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return outline, nil
}

// Delete 删除大纲
func (s *OutlineService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.outlines.Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithError(err)
	}
	return nil
}

func (s *OutlineService) get(ctx context.Context, id string) (*entity.Outline, error) {
	outline, err := s.outlines.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	if outline == nil {
		return nil, apperrors.ErrOutlineNotFound
	}
	return outline, nil
}
