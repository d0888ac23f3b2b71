package memory

import (
	"context"
	"time"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

// WorldRepository 世界观仓储内存实现
type WorldRepository struct {
	s *Store
}

// NewWorldRepository 创建世界观仓储
func NewWorldRepository(s *Store) *WorldRepository {
	return &WorldRepository{s: s}
}

func (r *WorldRepository) Create(ctx context.Context, world *entity.WorldEntry) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&world.CreatedAt, &world.UpdatedAt)
	r.s.data.worlds[world.ID] = cloneValue(world)
	return nil
}

func (r *WorldRepository) GetByID(_ context.Context, id string) (*entity.WorldEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.data.worlds[id]
	if !ok {
		return nil, nil
	}
	return cloneValue(w), nil
}

func (r *WorldRepository) Update(ctx context.Context, world *entity.WorldEntry) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&world.CreatedAt, &world.UpdatedAt)
	r.s.data.worlds[world.ID] = cloneValue(world)
	return nil
}

func (r *WorldRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	delete(r.s.data.worlds, id)
	return nil
}

func (r *WorldRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	defer r.s.lockWrite(ctx)()

	for id, w := range r.s.data.worlds {
		if w.NovelID == novelID {
			delete(r.s.data.worlds, id)
		}
	}
	return nil
}

func (r *WorldRepository) List(_ context.Context, filter repository.KeywordFilter) ([]*entity.WorldEntry, error) {
	r.s.mu.RLock()
	out := make([]*entity.WorldEntry, 0)
	for _, w := range r.s.data.worlds {
		if filter.NovelID != "" && w.NovelID != filter.NovelID {
			continue
		}
		if !matchesKeyword(filter.Keyword, w.Title, w.Content) {
			continue
		}
		out = append(out, cloneValue(w))
	}
	r.s.mu.RUnlock()

	sortByTime(out, func(w *entity.WorldEntry) time.Time { return w.UpdatedAt }, func(w *entity.WorldEntry) string { return w.ID }, true)
	return limit(out, repository.WorldTake.Clamp(filter.Take)), nil
}

func (r *WorldRepository) GetLatestByNovel(ctx context.Context, novelID string) (*entity.WorldEntry, error) {
	worlds, err := r.List(ctx, repository.KeywordFilter{NovelID: novelID, Take: 1})
	if err != nil || len(worlds) == 0 {
		return nil, err
	}
	return worlds[0], nil
}
