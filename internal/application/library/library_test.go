package library

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
	"novel-studio-api/internal/infrastructure/persistence/memory"
	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/wordcount"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []StatsEvent
	err    error
}

func (p *recordingPublisher) PublishStats(_ context.Context, e StatsEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// failingChapters 包装章节仓储，按需注入聚合失败
type failingChapters struct {
	repository.ChapterRepository
	failAggregate bool
}

func (f *failingChapters) AggregateByNovel(ctx context.Context, novelID string) (entity.NovelStats, error) {
	if f.failAggregate {
		return entity.NovelStats{}, errors.New("connection reset")
	}
	return f.ChapterRepository.AggregateByNovel(ctx, novelID)
}

type fixture struct {
	store     *memory.Store
	chapters  *failingChapters
	publisher *recordingPublisher
	novels    *NovelService
	chapterS  *ChapterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	novelRepo := memory.NewNovelRepository(store)
	chapters := &failingChapters{ChapterRepository: memory.NewChapterRepository(store)}
	pub := &recordingPublisher{}
	stats := NewStatsService(store, novelRepo, chapters, pub)
	return &fixture{
		store:     store,
		chapters:  chapters,
		publisher: pub,
		novels: NewNovelService(store, novelRepo, chapters,
			memory.NewCharacterRepository(store),
			memory.NewOutlineRepository(store),
			memory.NewWorldRepository(store),
			stats),
		chapterS: NewChapterService(store, novelRepo, chapters, stats),
	}
}

func (f *fixture) novel(t *testing.T) *entity.Novel {
	t.Helper()
	n, err := f.novels.Create(context.Background(), CreateNovelInput{Title: "Test"})
	require.NoError(t, err)
	return n
}

func (f *fixture) chapter(t *testing.T, novelID, content string) *entity.Chapter {
	t.Helper()
	res, err := f.chapterS.Create(context.Background(), novelID, CreateChapterInput{Title: "章", Content: content})
	require.NoError(t, err)
	return res.Chapter
}

func statusOf(err error) int {
	return apperrors.AsAppError(err).HTTPStatus
}

func TestCreateNovelStartsWithZeroStats(t *testing.T) {
	f := newFixture(t)
	n := f.novel(t)

	assert.Equal(t, entity.NovelStats{}, n.Stats())
	assert.Equal(t, entity.StatusDraft, n.Status)
}

func TestCreateNovelRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)
	_, err := f.novels.Create(context.Background(), CreateNovelInput{Title: "   "})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Equal(t, "小说标题不能为空", apperrors.AsAppError(err).Message)
}

func TestChapterCreateUpdatesNovelStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)

	res, err := f.chapterS.Create(ctx, n.ID, CreateChapterInput{Title: "第一章", Content: "Hello world"})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Chapter.WordCount)
	assert.Equal(t, 1, res.Chapter.Order)
	assert.Equal(t, entity.StatusDraft, res.Chapter.Status)

	got, err := f.novels.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NovelStats{WordCount: 10, ChapterCount: 1}, got.Stats())
	assert.Equal(t, entity.StatusWriting, got.Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, ReasonChapterCreated, f.publisher.events[0].Reason)
}

func TestStatsEqualSumOfNormalizedCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)

	texts := []string{"天地玄黄", "  宇宙 洪荒 ", "", "The quick brown fox"}
	for _, text := range texts {
		f.chapter(t, n.ID, text)
	}

	got, err := f.novels.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, wordcount.Sum(texts...), got.WordCount)
	assert.Equal(t, len(texts), got.ChapterCount)
}

func TestDeleteChapterReducesByItsCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	f.chapter(t, n.ID, "一二三四五")
	victim := f.chapter(t, n.ID, "abc def")

	before, _ := f.novels.Get(ctx, n.ID)
	after, err := f.chapterS.Delete(ctx, victim.ID)
	require.NoError(t, err)

	assert.Equal(t, before.WordCount-victim.WordCount, after.WordCount)
	assert.Equal(t, 1, after.ChapterCount)

	_, err = f.chapterS.Get(ctx, victim.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestUpdateChapterRecomputesWordCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	c := f.chapter(t, n.ID, "abc")

	content := "abcdef ghi"
	blank := "  "
	res, err := f.chapterS.Update(ctx, c.ID, UpdateChapterInput{Content: &content, Title: &blank})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Chapter.WordCount)
	assert.Equal(t, "章", res.Chapter.Title, "blank title is ignored")
	assert.Equal(t, 9, res.Novel.WordCount)
}

func TestUpdateChapterRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	n := f.novel(t)
	c := f.chapter(t, n.ID, "abc")

	bad := entity.Status("archived")
	_, err := f.chapterS.Update(context.Background(), c.ID, UpdateChapterInput{Status: &bad})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestRecalculateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	f.chapter(t, n.ID, "hello")

	first, err := f.novels.Recalculate(ctx, n.ID)
	require.NoError(t, err)
	second, err := f.novels.Recalculate(ctx, n.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Stats(), second.Stats())
	assert.Equal(t, first.Status, second.Status)
}

func TestReorderAssignsSequentialOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	c1 := f.chapter(t, n.ID, "one")
	c2 := f.chapter(t, n.ID, "two")
	c3 := f.chapter(t, n.ID, "three")

	chapters, err := f.chapterS.Reorder(ctx, n.ID, []string{c3.ID, c1.ID, c2.ID})
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	assert.Equal(t, []string{c3.ID, c1.ID, c2.ID}, []string{chapters[0].ID, chapters[1].ID, chapters[2].ID})
	assert.Equal(t, []int{1, 2, 3}, []int{chapters[0].Order, chapters[1].Order, chapters[2].Order})
}

func TestReorderRejectsMismatchedSetsWithoutWrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	c1 := f.chapter(t, n.ID, "one")
	c2 := f.chapter(t, n.ID, "two")

	other := f.novel(t)
	foreign := f.chapter(t, other.ID, "x")

	cases := map[string][]string{
		"empty":     {},
		"subset":    {c2.ID},
		"unknown":   {c2.ID, "missing"},
		"foreign":   {c2.ID, foreign.ID},
		"duplicate": {c2.ID, c2.ID},
		"superset":  {c2.ID, c1.ID, foreign.ID},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.chapterS.Reorder(ctx, n.ID, ids)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, statusOf(err))

			list, err := f.chapterS.List(ctx, n.ID)
			require.NoError(t, err)
			assert.Equal(t, []int{1, 2}, []int{list[0].Order, list[1].Order})
			assert.Equal(t, c1.ID, list[0].ID)
		})
	}
}

func TestReorderUnknownNovel(t *testing.T) {
	f := newFixture(t)
	_, err := f.chapterS.Reorder(context.Background(), "missing", []string{"a"})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestRecalculationFailureRollsBackMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	f.chapter(t, n.ID, "hello")

	f.chapters.failAggregate = true
	_, err := f.chapterS.Create(ctx, n.ID, CreateChapterInput{Title: "two", Content: "world"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Contains(t, apperrors.AsAppError(err).Details(), "connection reset")

	f.chapters.failAggregate = false
	list, err := f.chapterS.List(ctx, n.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "chapter insert rolled back with the failed recalculation")

	got, _ := f.novels.Get(ctx, n.ID)
	assert.Equal(t, entity.NovelStats{WordCount: 5, ChapterCount: 1}, got.Stats())
}

func TestPublisherFailureDoesNotFailMutation(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("redis down")
	n := f.novel(t)

	_, err := f.chapterS.Create(context.Background(), n.ID, CreateChapterInput{Title: "t", Content: "x"})
	assert.NoError(t, err)
}

func TestChapterCreateForUnknownNovel(t *testing.T) {
	f := newFixture(t)
	_, err := f.chapterS.Create(context.Background(), "missing", CreateChapterInput{Title: "t"})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestChapterCreateExplicitOrderAndNextOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)

	order := 5
	res, err := f.chapterS.Create(ctx, n.ID, CreateChapterInput{Title: "t", Order: &order})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Chapter.Order)

	next := f.chapter(t, n.ID, "")
	assert.Equal(t, 6, next.Order)
}

func TestNovelDetailAndCascadeDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	f.chapter(t, n.ID, "b")
	chars := memory.NewCharacterRepository(f.store)
	require.NoError(t, chars.Create(ctx, entity.NewCharacter(n.ID, "林黛玉")))
	worlds := memory.NewWorldRepository(f.store)
	require.NoError(t, worlds.Create(ctx, entity.NewWorldEntry(n.ID, "大观园", "", "")))

	detail, err := f.novels.GetDetail(ctx, n.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Chapters, 1)
	assert.Len(t, detail.Characters, 1)
	require.NotNil(t, detail.WorldBuilding)
	assert.Equal(t, "大观园", detail.WorldBuilding.Title)

	require.NoError(t, f.novels.Delete(ctx, n.ID))
	_, err = f.novels.GetDetail(ctx, n.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	left, _ := chars.List(ctx, repository.KeywordFilter{NovelID: n.ID})
	assert.Empty(t, left)
}

func TestNovelDetailIncludesEveryOutline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	outlines := memory.NewOutlineRepository(f.store)

	total := repository.OutlineTake.Max + 5
	for i := total; i >= 1; i-- {
		require.NoError(t, outlines.Create(ctx, entity.NewOutline(n.ID, fmt.Sprintf("第%d卷", i), "", i)))
	}

	detail, err := f.novels.GetDetail(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, detail.Outlines, total)
	assert.Equal(t, 1, detail.Outlines[0].Order)
	assert.Equal(t, total, detail.Outlines[total-1].Order)
}

func TestUpdateNovel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	n := f.novel(t)
	f.chapter(t, n.ID, "abc")

	title := "  新标题 "
	status := entity.StatusPublished
	updated, err := f.novels.Update(ctx, n.ID, UpdateNovelInput{Title: &title, Status: &status, Tags: []string{"a", "a", "b"}, TagsSet: true})
	require.NoError(t, err)
	assert.Equal(t, "新标题", updated.Title)
	assert.Equal(t, entity.StatusPublished, updated.Status)
	assert.Equal(t, []string{"a", "b"}, []string(updated.Tags))
	assert.Equal(t, 3, updated.WordCount, "stats survive partial update")

	blank := " "
	_, err = f.novels.Update(ctx, n.ID, UpdateNovelInput{Title: &blank})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	bad := entity.Status("archived")
	_, err = f.novels.Update(ctx, n.ID, UpdateNovelInput{Status: &bad})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.novels.Update(ctx, "missing", UpdateNovelInput{})
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
