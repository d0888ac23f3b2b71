package memory

import (
	"context"
	"time"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

// CharacterRepository 角色仓储内存实现
type CharacterRepository struct {
	s *Store
}

// NewCharacterRepository 创建角色仓储
func NewCharacterRepository(s *Store) *CharacterRepository {
	return &CharacterRepository{s: s}
}

func (r *CharacterRepository) Create(ctx context.Context, character *entity.Character) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&character.CreatedAt, &character.UpdatedAt)
	r.s.data.characters[character.ID] = cloneValue(character)
	return nil
}

func (r *CharacterRepository) GetByID(_ context.Context, id string) (*entity.Character, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.data.characters[id]
	if !ok {
		return nil, nil
	}
	return cloneValue(c), nil
}

func (r *CharacterRepository) Update(ctx context.Context, character *entity.Character) error {
	defer r.s.lockWrite(ctx)()

	r.s.touch(&character.CreatedAt, &character.UpdatedAt)
	r.s.data.characters[character.ID] = cloneValue(character)
	return nil
}

func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lockWrite(ctx)()

	delete(r.s.data.characters, id)
	return nil
}

func (r *CharacterRepository) DeleteByNovel(ctx context.Context, novelID string) error {
	defer r.s.lockWrite(ctx)()

	for id, c := range r.s.data.characters {
		if c.NovelID == novelID {
			delete(r.s.data.characters, id)
		}
	}
	return nil
}

func (r *CharacterRepository) List(_ context.Context, filter repository.KeywordFilter) ([]*entity.Character, error) {
	r.s.mu.RLock()
	out := make([]*entity.Character, 0)
	for _, c := range r.s.data.characters {
		if filter.NovelID != "" && c.NovelID != filter.NovelID {
			continue
		}
		if !matchesKeyword(filter.Keyword, c.Name, c.Description) {
			continue
		}
		out = append(out, cloneValue(c))
	}
	r.s.mu.RUnlock()

	sortByTime(out, func(c *entity.Character) time.Time { return c.UpdatedAt }, func(c *entity.Character) string { return c.ID }, true)
	return limit(out, repository.CharacterTake.Clamp(filter.Take)), nil
}

func (r *CharacterRepository) ListByNovel(_ context.Context, novelID string) ([]*entity.Character, error) {
	r.s.mu.RLock()
	out := make([]*entity.Character, 0)
	for _, c := range r.s.data.characters {
		if c.NovelID == novelID {
			out = append(out, cloneValue(c))
		}
	}
	r.s.mu.RUnlock()

	sortByTime(out, func(c *entity.Character) time.Time { return c.CreatedAt }, func(c *entity.Character) string { return c.ID }, true)
	return out, nil
}
