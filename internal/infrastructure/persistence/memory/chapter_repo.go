package memory

import (
	"context"
	"sort"

	"novel-studio-api/internal/domain/entity"
)

// ChapterRepository 章节仓储内存实现
type ChapterRepository struct {
	s *Store
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(s *Store) *ChapterRepository {
	return &ChapterRepository{s: s}
}

func (r *ChapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&chapter.CreatedAt, &chapter.UpdatedAt)
	r.s.data.chapters[chapter.ID] = cloneValue(chapter)
	return nil
}

func (r *ChapterRepository) GetByID(_ context.Context, id string) (*entity.Chapter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.data.chapters[id]
	if !ok {
		return nil, nil
	}
	return cloneValue(c), nil
}

func (r *ChapterRepository) Update(ctx context.Context, chapter *entity.Chapter) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&chapter.CreatedAt, &chapter.UpdatedAt)
	r.s.data.chapters[chapter.ID] = cloneValue(chapter)
	return nil
}

func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	delete(r.s.data.chapters, id)
	return nil
}

func (r *ChapterRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	defer r.s.lockWrite(ctx)()

	for id, c := range r.s.data.chapters {
		if c.NovelID == novelID {
			delete(r.s.data.chapters, id)
		}
	}
	return nil
}

// ListByNovel 按 order 升序，order 相同时按创建时间
func (r *ChapterRepository) ListByNovel(_ context.Context, novelID string) ([]*entity.Chapter, error) {
	r.s.mu.RLock()
	out := make([]*entity.Chapter, 0)
	for _, c := range r.s.data.chapters {
		if c.NovelID == novelID {
			out = append(out, cloneValue(c))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ChapterRepository) ListIDsByNovel(_ context.Context, novelID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]string, 0)
	for id, c := range r.s.data.chapters {
		if c.NovelID == novelID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ChapterRepository) AggregateByNovel(_ context.Context, novelID string) (entity.NovelStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats entity.NovelStats
	for _, c := range r.s.data.chapters {
		if c.NovelID == novelID {
			stats.WordCount += c.WordCount
			stats.ChapterCount++
		}
	}
	return stats, nil
}

func (r *ChapterRepository) UpdateOrder(ctx context.Context, novelID, id string, order int) error {
	defer r.s.lockWrite(ctx)()

	c, ok := r.s.data.chapters[id]
	if !ok || c.NovelID != novelID {
		return errNotFound("chapter", id)
	}
	c.Order = order
	c.UpdatedAt = r.s.now()
	return nil
}

func (r *ChapterRepository) GetNextOrder(_ context.Context, novelID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	maxOrder := 0
	for _, c := range r.s.data.chapters {
		if c.NovelID == novelID && c.Order > maxOrder {
			maxOrder = c.Order
		}
	}
	return maxOrder + 1, nil
}
