// Package library 实现小说、章节的业务逻辑与统计维护
package library

import (
	"context"
	"fmt"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
	"novel-studio-api/pkg/tracer"
)

// 统计重算原因
const (
	ReasonNovelCreated   = "novel_created"
	ReasonChapterCreated = "chapter_created"
	ReasonChapterUpdated = "chapter_updated"
	ReasonChapterDeleted = "chapter_deleted"
	ReasonReordered      = "chapters_reordered"
	ReasonManual         = "manual"
)

// StatsEvent 统计变更事件
type StatsEvent struct {
	NovelID      string
	WordCount    int
	ChapterCount int
	Status       entity.Status
	Reason       string
}

// StatsPublisher 统计事件发布接口，失败不影响主流程
type StatsPublisher interface {
	PublishStats(ctx context.Context, event StatsEvent) error
}

// StatsService 维护小说字数、章节数与推导状态
type StatsService struct {
	tx        repository.Transactor
	novels    repository.NovelRepository
	chapters  repository.ChapterRepository
	publisher StatsPublisher
}

// NewStatsService 创建统计服务，publisher 可为 nil
func NewStatsService(tx repository.Transactor, novels repository.NovelRepository, chapters repository.ChapterRepository, publisher StatsPublisher) *StatsService {
	return &StatsService{tx: tx, novels: novels, chapters: chapters, publisher: publisher}
}

// Recalculate 根据当前章节重算并持久化小说统计
// 在调用方事务中执行时复用该事务；小说行被锁定，同一小说的重算串行进行。
func (s *StatsService) Recalculate(ctx context.Context, novelID, reason string) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "library.StatsService.Recalculate")
	defer span.End()

	var novel *entity.Novel
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.lockNovel(txCtx, novelID)
		if err != nil {
			return err
		}

		stats, err := s.chapters.AggregateByNovel(txCtx, novelID)
		if err != nil {
			return apperrors.ErrDatabase.WithError(err)
		}

		if locked.ApplyStats(stats) {
			if err := s.novels.UpdateStats(txCtx, novelID, stats, locked.Status); err != nil {
				return apperrors.ErrDatabase.WithError(err)
			}
		}
		novel = locked
		return nil
	})
	if err != nil {
		tracer.RecordError(span, err)
		metrics.StatsRecalculationTotal.WithLabelValues(reason, "error").Inc()
		return nil, fmt.Errorf("recalculate novel stats: %w", err)
	}

	metrics.StatsRecalculationTotal.WithLabelValues(reason, "ok").Inc()
	metrics.NovelWordCount.Observe(float64(novel.WordCount))
	return novel, nil
}

func (s *StatsService) lockNovel(ctx context.Context, novelID string) (*entity.Novel, error) {
	return lockNovel(ctx, s.novels, novelID)
}

// publish 在事务提交后发布统计事件
func (s *StatsService) publish(ctx context.Context, novel *entity.Novel, reason string) {
	if s.publisher == nil || novel == nil {
		return
	}
	event := StatsEvent{
		NovelID:      novel.ID,
		WordCount:    novel.WordCount,
		ChapterCount: novel.ChapterCount,
		Status:       novel.Status,
		Reason:       reason,
	}
	if err := s.publisher.PublishStats(ctx, event); err != nil {
		logger.Warn(ctx, "failed to publish novel stats event",
			"novel_id", novel.ID,
			"reason", reason,
			"error", err.Error(),
		)
	}
}
