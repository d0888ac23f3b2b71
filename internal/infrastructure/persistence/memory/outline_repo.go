package memory

import (
	"context"
	"sort"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

// OutlineRepository 大纲仓储内存实现
type OutlineRepository struct {
	s *Store
}

// NewOutlineRepository 创建大纲仓储
func NewOutlineRepository(s *Store) *OutlineRepository {
	return &OutlineRepository{s: s}
}

func (r *OutlineRepository) Create(ctx context.Context, outline *entity.Outline) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&outline.CreatedAt, &outline.UpdatedAt)
	r.s.data.outlines[outline.ID] = cloneValue(outline)
	return nil
}

func (r *OutlineRepository) GetByID(_ context.Context, id string) (*entity.Outline, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.data.outlines[id]
	if !ok {
		return nil, nil
	}
	return cloneValue(o), nil
}

func (r *OutlineRepository) Update(ctx context.Context, outline *entity.Outline) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&outline.CreatedAt, &outline.UpdatedAt)
	r.s.data.outlines[outline.ID] = cloneValue(outline)
	return nil
}

func (r *OutlineRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	delete(r.s.data.outlines, id)
	return nil
}

func (r *OutlineRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	defer r.s.lockWrite(ctx)()

	for id, o := range r.s.data.outlines {
		if o.NovelID == novelID {
			delete(r.s.data.outlines, id)
		}
	}
	return nil
}

func (r *OutlineRepository) List(_ context.Context, filter repository.KeywordFilter) ([]*entity.Outline, error) {
	out := r.collect(filter.NovelID, filter.Keyword)
	return limit(out, repository.OutlineTake.Clamp(filter.Take)), nil
}

// ListByNovel 获取小说全部大纲
func (r *OutlineRepository) ListByNovel(_ context.Context, novelID string) ([]*entity.Outline, error) {
	return r.collect(novelID, ""), nil
}

func (r *OutlineRepository) collect(novelID, keyword string) []*entity.Outline {
	r.s.mu.RLock()
	out := make([]*entity.Outline, 0)
	for _, o := range r.s.data.outlines {
		if novelID != "" && o.NovelID != novelID {
			continue
		}
		if !matchesKeyword(keyword, o.Title, o.Content) {
			continue
		}
		out = append(out, cloneValue(o))
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *OutlineRepository) CountByNovel(_ context.Context, novelID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, o := range r.s.data.outlines {
		if o.NovelID == novelID {
			n++
		}
	}
	return n, nil
}
