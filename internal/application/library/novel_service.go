package library

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"novel-studio-api/internal/application/shared"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/tracer"
)

// CreateNovelInput 创建小说参数
type CreateNovelInput struct {
	Title       string
	Description string
	Genre       string
	Tags        []string
	CoverImage  string
}

// Validate 校验创建参数
func (in CreateNovelInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, shared.NotBlank("小说标题不能为空"), validation.RuneLength(0, 255).Error("小说标题过长")),
	)
}

// UpdateNovelInput 更新小说参数，nil 表示不修改
type UpdateNovelInput struct {
	Title       *string
	Description *string
	Genre       *string
	Status      *entity.Status
	Tags        []string
	TagsSet     bool
	CoverImage  *string
}

// Validate 校验更新参数
func (in UpdateNovelInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, shared.NotBlank("小说标题不能为空")),
		validation.Field(&in.Status, validation.When(in.Status != nil, validation.In(statusValues()...).Error("小说状态无效"))),
	)
}

// NovelDetail 小说详情及其子资源
type NovelDetail struct {
	Novel         *entity.Novel
	Chapters      []*entity.Chapter
	Characters    []*entity.Character
	Outlines      []*entity.Outline
	WorldBuilding *entity.WorldEntry
}

// NovelService 小说业务服务
type NovelService struct {
	tx         repository.Transactor
	novels     repository.NovelRepository
	chapters   repository.ChapterRepository
	characters repository.CharacterRepository
	outlines   repository.OutlineRepository
	worlds     repository.WorldRepository
	stats      *StatsService
}

// NewNovelService 创建小说服务
func NewNovelService(
	tx repository.Transactor,
	novels repository.NovelRepository,
	chapters repository.ChapterRepository,
	characters repository.CharacterRepository,
	outlines repository.OutlineRepository,
	worlds repository.WorldRepository,
	stats *StatsService,
) *NovelService {
	return &NovelService{
		tx:         tx,
		novels:     novels,
		chapters:   chapters,
		characters: characters,
		outlines:   outlines,
		worlds:     worlds,
		stats:      stats,
	}
}

// List 获取小说列表
func (s *NovelService) List(ctx context.Context, filter *repository.NovelFilter) ([]*entity.Novel, error) {
	novels, err := s.novels.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return novels, nil
}

// Create 创建小说，统计初始化为零
func (s *NovelService) Create(ctx context.Context, in CreateNovelInput) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "library.NovelService.Create")
	defer span.End()

	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	novel := entity.NewNovel(in.Title)
	novel.Description = strings.TrimSpace(in.Description)
	novel.Genre = strings.TrimSpace(in.Genre)
	novel.CoverImage = strings.TrimSpace(in.CoverImage)
	novel.Tags = entity.NormalizeTags(in.Tags)

	var created *entity.Novel
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.novels.Create(txCtx, novel); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		var err error
		created, err = s.stats.Recalculate(txCtx, novel.ID, ReasonNovelCreated)
		return err
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	logger.Info(ctx, "novel created", "novel_id", created.ID)
	return created, nil
}

// Get 获取小说
func (s *NovelService) Get(ctx context.Context, id string) (*entity.Novel, error) {
	novel, err := s.novels.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	if novel == nil {
		return nil, apperrors.ErrNovelNotFound
	}
	return novel, nil
}

// GetDetail 获取小说及章节、角色、大纲、世界观
func (s *NovelService) GetDetail(ctx context.Context, id string) (*NovelDetail, error) {
	ctx, span := tracer.Start(ctx, "library.NovelService.GetDetail")
	defer span.End()

	novel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &NovelDetail{Novel: novel}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Chapters, err = s.chapters.ListByNovel(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Characters, err = s.characters.ListByNovel(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Outlines, err = s.outlines.ListByNovel(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.WorldBuilding, err = s.worlds.GetLatestByNovel(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		tracer.RecordError(span, err)
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return detail, nil
}

// Update 部分更新小说
func (s *NovelService) Update(ctx context.Context, id string, in UpdateNovelInput) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "library.NovelService.Update")
	defer span.End()

	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	var novel *entity.Novel
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.stats.lockNovel(txCtx, id)
		if err != nil {
			return err
		}
		applyNovelUpdate(locked, in)
		if err := s.novels.Update(txCtx, locked); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		novel = locked
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}
	return novel, nil
}

// applyNovelUpdate 应用部分更新，统计字段不受影响
func applyNovelUpdate(novel *entity.Novel, in UpdateNovelInput) {
	if in.Title != nil {
		novel.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		novel.Description = strings.TrimSpace(*in.Description)
	}
	if in.Genre != nil {
		novel.Genre = strings.TrimSpace(*in.Genre)
	}
	if in.Status != nil {
		novel.Status = *in.Status
	}
	if in.TagsSet {
		novel.Tags = entity.NormalizeTags(in.Tags)
	}
	if in.CoverImage != nil {
		novel.CoverImage = strings.TrimSpace(*in.CoverImage)
	}
}

// Delete 删除小说及其全部子资源
func (s *NovelService) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "library.NovelService.Delete")
	defer span.End()

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.stats.lockNovel(txCtx, id); err != nil {
			return err
		}
		steps := []func(context.Context, string) error{
			s.chapters.DeleteByNovel,
			s.characters.DeleteByNovel,
			s.outlines.DeleteByNovel,
			s.worlds.DeleteByNovel,
			s.novels.Delete,
		}
		for _, step := range steps {
			if err := step(txCtx, id); err != nil {
				return apperrors.ErrDatabase.WithError(err)
			}
		}
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return err
	}

	logger.Info(ctx, "novel deleted", "novel_id", id)
	return nil
}

// Recalculate 手动触发统计重算
func (s *NovelService) Recalculate(ctx context.Context, id string) (*entity.Novel, error) {
	novel, err := s.stats.Recalculate(ctx, id, ReasonManual)
	if err != nil {
		return nil, err
	}
	s.stats.publish(ctx, novel, ReasonManual)
	return novel, nil
}

// EnsureExists 检查小说是否存在
func (s *NovelService) EnsureExists(ctx context.Context, id string) error {
	_, err := s.Get(ctx, id)
	return err
}
