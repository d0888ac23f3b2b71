package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

// NovelRepository 小说仓储内存实现
type NovelRepository struct {
	s *Store
}

// NewNovelRepository 创建小说仓储
func NewNovelRepository(s *Store) *NovelRepository {
	return &NovelRepository{s: s}
}

func (r *NovelRepository) Create(ctx context.Context, novel *entity.Novel) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&novel.CreatedAt, &novel.UpdatedAt)
	r.s.data.novels[novel.ID] = cloneNovel(novel)
	return nil
}

func (r *NovelRepository) GetByID(_ context.Context, id string) (*entity.Novel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.data.novels[id]
	if !ok {
		return nil, nil
	}
	return cloneNovel(n), nil
}

// GetForUpdate 内存实现中事务已串行，直接读取
func (r *NovelRepository) GetForUpdate(ctx context.Context, id string) (*entity.Novel, error) {
	return r.GetByID(ctx, id)
}

func (r *NovelRepository) Update(ctx context.Context, novel *entity.Novel) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&novel.CreatedAt, &novel.UpdatedAt)
	r.s.data.novels[novel.ID] = cloneNovel(novel)
	return nil
}

func (r *NovelRepository) UpdateStats(ctx context.Context, id string, stats entity.NovelStats, status entity.Status) error {
	defer r.s.lockWrite(ctx)()

	n, ok := r.s.data.novels[id]
	if !ok {
		return errNotFound("novel", id)
	}
	n.WordCount = stats.WordCount
	n.ChapterCount = stats.ChapterCount
	n.Status = status
	n.UpdatedAt = r.s.now()
	return nil
}

func (r *NovelRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	delete(r.s.data.novels, id)
	return nil
}

func (r *NovelRepository) List(_ context.Context, filter *repository.NovelFilter) ([]*entity.Novel, error) {
	if filter == nil {
		filter = &repository.NovelFilter{}
	}

	r.s.mu.RLock()
	out := make([]*entity.Novel, 0, len(r.s.data.novels))
	for _, n := range r.s.data.novels {
		if !matchesKeyword(filter.Search, n.Title, n.Description) {
			continue
		}
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		if tag := strings.TrimSpace(filter.Tag); tag != "" && !n.HasTag(tag) {
			continue
		}
		out = append(out, cloneNovel(n))
	}
	r.s.mu.RUnlock()

	desc := filter.Order != repository.SortOrderAsc
	switch filter.Sort {
	case repository.NovelSortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Title > out[j].Title
			}
			return out[i].Title < out[j].Title
		})
	case repository.NovelSortCreatedAt:
		sortByTime(out, func(n *entity.Novel) time.Time { return n.CreatedAt }, func(n *entity.Novel) string { return n.ID }, desc)
	default:
		sortByTime(out, func(n *entity.Novel) time.Time { return n.UpdatedAt }, func(n *entity.Novel) string { return n.ID }, desc)
	}
	return out, nil
}
