package library

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	apperrors "novel-studio-api/pkg/errors"
)

type catalogFixture struct {
	*fixture
	characters *CharacterService
	outlines   *OutlineService
	worlds     *WorldService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	f := newFixture(t)
	novelRepo := memory.NewNovelRepository(f.store)
	return &catalogFixture{
		fixture:    f,
		characters: NewCharacterService(f.store, novelRepo, memory.NewCharacterRepository(f.store)),
		outlines:   NewOutlineService(f.store, novelRepo, memory.NewOutlineRepository(f.store)),
		worlds:     NewWorldService(f.store, novelRepo, memory.NewWorldRepository(f.store)),
	}
}

func TestCharacterService(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	n := f.novel(t)

	t.Run("validation", func(t *testing.T) {
		_, err := f.characters.Create(ctx, CreateCharacterInput{NovelID: n.ID, Name: "  "})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)
		assert.Equal(t, "角色名称不能为空", apperrors.AsAppError(err).Message)
	})

	t.Run("unknown novel", func(t *testing.T) {
		_, err := f.characters.Create(ctx, CreateCharacterInput{NovelID: "missing", Name: "林夜"})
		assert.ErrorIs(t, err, apperrors.ErrNovelNotFound)
	})

	c, err := f.characters.Create(ctx, CreateCharacterInput{NovelID: n.ID, Name: " 林夜 ", Description: "剑修"})
	require.NoError(t, err)
	assert.Equal(t, "林夜", c.Name)

	list, err := f.characters.List(ctx, repository.KeywordFilter{NovelID: n.ID, Keyword: "剑"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	personality := " 冷静 "
	updated, err := f.characters.Update(ctx, c.ID, UpdateCharacterInput{Personality: &personality})
	require.NoError(t, err)
	assert.Equal(t, "冷静", updated.Personality)
	assert.Equal(t, "林夜", updated.Name)

	require.NoError(t, f.characters.Delete(ctx, c.ID))
	assert.ErrorIs(t, f.characters.Delete(ctx, c.ID), apperrors.ErrCharacterNotFound)
}

func TestOutlineServiceDefaultsOrder(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	n := f.novel(t)

	first, err := f.outlines.Create(ctx, CreateOutlineInput{NovelID: n.ID, Title: "开端", Content: "相遇"})
	require.NoError(t, err)
	second, err := f.outlines.Create(ctx, CreateOutlineInput{NovelID: n.ID, Title: "发展", Content: "冲突"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)

	_, err = f.outlines.Create(ctx, CreateOutlineInput{NovelID: n.ID, Title: "结局"})
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)

	list, err := f.outlines.List(ctx, repository.KeywordFilter{NovelID: n.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	blank := ""
	_, err = f.outlines.Update(ctx, first.ID, UpdateOutlineInput{Title: &blank})
	assert.Equal(t, "标题不能为空", apperrors.AsAppError(err).Message)
}

func TestWorldServiceDefaultsType(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	n := f.novel(t)

	w, err := f.worlds.Create(ctx, CreateWorldInput{NovelID: n.ID, Title: "九州", Content: "灵气复苏"})
	require.NoError(t, err)
	assert.Equal(t, "setting", w.Type)

	detail, err := f.novels.GetDetail(ctx, n.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.WorldBuilding)
	assert.Equal(t, w.ID, detail.WorldBuilding.ID)

	_, err = f.worlds.Update(ctx, "missing", UpdateWorldInput{})
	assert.ErrorIs(t, err, apperrors.ErrWorldNotFound)
}

func TestCatalogCreateWaitsForNovelLock(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	novelRepo := memory.NewNovelRepository(f.store)

	entered := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- f.store.WithTransaction(ctx, func(txCtx context.Context) error {
			if _, err := novelRepo.GetForUpdate(txCtx, n.ID); err != nil {
				return err
			}
			close(entered)
			<-release
			return novelRepo.Delete(txCtx, n.ID)
		})
	}()
	<-entered

	charErr := make(chan error, 1)
	worldErr := make(chan error, 1)
	go func() {
		_, err := f.characters.Create(ctx, CreateCharacterInput{NovelID: n.ID, Name: "林夜"})
		charErr <- err
	}()
	go func() {
		_, err := f.worlds.Create(ctx, CreateWorldInput{NovelID: n.ID, Title: "青云山", Content: "宗门"})
		worldErr <- err
	}()

	close(release)
	require.NoError(t, <-txDone)
	assert.ErrorIs(t, <-charErr, apperrors.ErrNovelNotFound)
	assert.ErrorIs(t, <-worldErr, apperrors.ErrNovelNotFound)

	chars, err := memory.NewCharacterRepository(f.store).ListByNovel(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, chars)
	worlds, err := memory.NewWorldRepository(f.store).List(ctx, repository.KeywordFilter{NovelID: n.ID})
	require.NoError(t, err)
	assert.Empty(t, worlds)
}
