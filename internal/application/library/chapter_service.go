package library

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"novel-studio-api/internal/application/shared"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
	"novel-studio-api/pkg/tracer"
)

// CreateChapterInput 创建章节参数
type CreateChapterInput struct {
	Title   string
	Content string
	Summary string
	Status  entity.Status
	Order   *int
}

// Validate 校验创建参数
func (in CreateChapterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, shared.NotBlank("章节标题不能为空")),
		validation.Field(&in.Status, validation.In(statusValues()...).Error("章节状态无效")),
		validation.Field(&in.Order, validation.When(in.Order != nil, validation.Min(1).Error("章节顺序必须为正整数"))),
	)
}

// UpdateChapterInput 更新章节参数，nil 表示不修改
type UpdateChapterInput struct {
	Title   *string
	Content *string
	Summary *string
	Status  *entity.Status
	Order   *int
}

// Validate 校验更新参数
func (in UpdateChapterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Status, validation.When(in.Status != nil, validation.In(statusValues()...).Error("章节状态无效"))),
		validation.Field(&in.Order, validation.When(in.Order != nil, validation.Min(1).Error("章节顺序必须为正整数"))),
	)
}

// ChapterResult 章节变更结果，附带重算后的小说
type ChapterResult struct {
	Chapter *entity.Chapter
	Novel   *entity.Novel
}

// ChapterService 章节业务服务
// 章节的任何写操作与统计重算在同一事务内完成。
type ChapterService struct {
	tx       repository.Transactor
	novels   repository.NovelRepository
	chapters repository.ChapterRepository
	stats    *StatsService
}

// NewChapterService 创建章节服务
func NewChapterService(tx repository.Transactor, novels repository.NovelRepository, chapters repository.ChapterRepository, stats *StatsService) *ChapterService {
	return &ChapterService{tx: tx, novels: novels, chapters: chapters, stats: stats}
}

// List 获取小说的章节列表（按 order 升序）
func (s *ChapterService) List(ctx context.Context, novelID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "library.ChapterService.List")
	defer span.End()

	if err := ensureNovel(ctx, s.novels, novelID); err != nil {
		return nil, err
	}
	chapters, err := s.chapters.ListByNovel(ctx, novelID)
	if err != nil {
		tracer.RecordError(span, err)
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return chapters, nil
}

// Get 获取章节
func (s *ChapterService) Get(ctx context.Context, id string) (*entity.Chapter, error) {
	chapter, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	if chapter == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return chapter, nil
}

// Create 创建章节并重算统计
func (s *ChapterService) Create(ctx context.Context, novelID string, in CreateChapterInput) (*ChapterResult, error) {
	ctx, span := tracer.Start(ctx, "library.ChapterService.Create")
	defer span.End()
	ctx = logger.WithNovelID(ctx, novelID)

	if in.Status == "" {
		in.Status = entity.StatusDraft
	}
	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	var result ChapterResult
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.stats.lockNovel(txCtx, novelID); err != nil {
			return err
		}

		order := 0
		if in.Order != nil {
			order = *in.Order
		} else {
			next, err := s.chapters.GetNextOrder(txCtx, novelID)
			if err != nil {
				return apperrors.ErrDatabase.WithError(err)
			}
			order = next
		}

		chapter := entity.NewChapter(novelID, in.Title, order)
		chapter.SetContent(in.Content)
		chapter.Summary = strings.TrimSpace(in.Summary)
		chapter.Status = in.Status
		if err := s.chapters.Create(txCtx, chapter); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}

		novel, err := s.stats.Recalculate(txCtx, novelID, ReasonChapterCreated)
		if err != nil {
			return err
		}
		result = ChapterResult{Chapter: chapter, Novel: novel}
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	logger.Info(ctx, "chapter created", "chapter_id", result.Chapter.ID, "word_count", result.Chapter.WordCount)
	s.stats.publish(ctx, result.Novel, ReasonChapterCreated)
	return &result, nil
}

// Update 更新章节；内容变化时重新计算字数
func (s *ChapterService) Update(ctx context.Context, id string, in UpdateChapterInput) (*ChapterResult, error) {
	ctx, span := tracer.Start(ctx, "library.ChapterService.Update")
	defer span.End()

	if err := shared.Validate(in); err != nil {
		return nil, err
	}

	var result ChapterResult
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		chapter, err := s.Get(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.stats.lockNovel(txCtx, chapter.NovelID); err != nil {
			return err
		}

		if in.Title != nil {
			if title := strings.TrimSpace(*in.Title); title != "" {
				chapter.Title = title
			}
		}
		if in.Content != nil {
			chapter.SetContent(*in.Content)
		}
		if in.Summary != nil {
			chapter.Summary = strings.TrimSpace(*in.Summary)
		}
		if in.Status != nil {
			chapter.Status = *in.Status
		}
		if in.Order != nil {
			chapter.Order = *in.Order
		}
		if err := s.chapters.Update(txCtx, chapter); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}

		novel, err := s.stats.Recalculate(txCtx, chapter.NovelID, ReasonChapterUpdated)
		if err != nil {
			return err
		}
		result = ChapterResult{Chapter: chapter, Novel: novel}
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	s.stats.publish(ctx, result.Novel, ReasonChapterUpdated)
	return &result, nil
}

// Delete 删除章节并重算统计
func (s *ChapterService) Delete(ctx context.Context, id string) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "library.ChapterService.Delete")
	defer span.End()

	var novel *entity.Novel
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		chapter, err := s.Get(txCtx, id)
		if err != nil {
			return err
		}
		if _, err := s.stats.lockNovel(txCtx, chapter.NovelID); err != nil {
			return err
		}
		if err := s.chapters.Delete(txCtx, id); err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		novel, err = s.stats.Recalculate(txCtx, chapter.NovelID, ReasonChapterDeleted)
		return err
	})
	if err != nil {
		tracer.RecordError(span, err)
		return nil, err
	}

	s.stats.publish(ctx, novel, ReasonChapterDeleted)
	return novel, nil
}

// Reorder 按给定 ID 顺序重排章节
// 给定列表必须与小说当前章节集合完全一致，所有顺序更新在同一事务内完成。
func (s *ChapterService) Reorder(ctx context.Context, novelID string, chapterIDs []string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "library.ChapterService.Reorder")
	defer span.End()
	ctx = logger.WithNovelID(ctx, novelID)

	if len(chapterIDs) == 0 {
		metrics.ChapterReorderTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.Validation("缺少章节列表")
	}
	if hasDuplicates(chapterIDs) {
		metrics.ChapterReorderTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.Validation("章节列表包含重复 ID")
	}

	var novel *entity.Novel
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.stats.lockNovel(txCtx, novelID); err != nil {
			return err
		}

		current, err := s.chapters.ListIDsByNovel(txCtx, novelID)
		if err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}
		if !sameSet(current, chapterIDs) {
			return apperrors.Validation("章节列表包含无效 ID").
				WithDetail("chapterIds must list every chapter of the novel exactly once")
		}

		for i, id := range chapterIDs {
			if err := s.chapters.UpdateOrder(txCtx, novelID, id, i+1); err != nil {
				return apperrors.ErrDatabase.WithError(err)
			}
		}

		novel, err = s.stats.Recalculate(txCtx, novelID, ReasonReordered)
		return err
	})
	if err != nil {
		tracer.RecordError(span, err)
		status := "error"
		if apperrors.AsAppError(err).Code == apperrors.CodeInvalidParam {
			status = "invalid"
		}
		metrics.ChapterReorderTotal.WithLabelValues(status).Inc()
		return nil, err
	}
	metrics.ChapterReorderTotal.WithLabelValues("ok").Inc()

	s.stats.publish(ctx, novel, ReasonReordered)
	chapters, err := s.chapters.ListByNovel(ctx, novelID)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithError(err)
	}
	return chapters, nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// sameSet 比较两个无重复 ID 列表是否为同一集合
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func statusValues() []any {
	statuses := entity.Statuses()
	out := make([]any, len(statuses))
	for i, s := range statuses {
		out[i] = s
	}
	return out
}
