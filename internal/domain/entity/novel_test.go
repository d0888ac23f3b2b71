package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNovelStartsEmpty(t *testing.T) {
	n := NewNovel("  Test  ")

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Test", n.Title)
	assert.Equal(t, StatusDraft, n.Status)
	assert.Equal(t, NovelStats{}, n.Stats())
	assert.NotNil(t, n.Tags)
}

func TestDeriveNovelStatus(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		stats   NovelStats
		want    Status
	}{
		{"draft without chapters stays draft", StatusDraft, NovelStats{}, StatusDraft},
		{"draft with empty chapter stays draft", StatusDraft, NovelStats{ChapterCount: 1}, StatusDraft},
		{"draft with content starts writing", StatusDraft, NovelStats{WordCount: 10, ChapterCount: 1}, StatusWriting},
		{"writing without chapters falls back", StatusWriting, NovelStats{}, StatusDraft},
		{"writing keeps writing", StatusWriting, NovelStats{WordCount: 5, ChapterCount: 2}, StatusWriting},
		{"completed untouched", StatusCompleted, NovelStats{}, StatusCompleted},
		{"published untouched", StatusPublished, NovelStats{WordCount: 1, ChapterCount: 1}, StatusPublished},
		{"empty becomes draft", "", NovelStats{}, StatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveNovelStatus(tt.current, tt.stats))
		})
	}
}

func TestApplyStatsIsIdempotent(t *testing.T) {
	n := NewNovel("Test")
	stats := NovelStats{WordCount: 10, ChapterCount: 1}

	assert.True(t, n.ApplyStats(stats))
	assert.Equal(t, StatusWriting, n.Status)
	assert.False(t, n.ApplyStats(stats))
	assert.Equal(t, stats, n.Stats())
}

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{" 玄幻 ", "", "修仙", "玄幻", "  "})
	assert.Equal(t, []string{"玄幻", "修仙"}, []string(tags))

	n := NewNovel("x")
	n.Tags = tags
	assert.True(t, n.HasTag("修仙"))
	assert.False(t, n.HasTag("都市"))
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("archived").IsValid())
}

func TestChapterSetContentDerivesWordCount(t *testing.T) {
	c := NewChapter("novel-1", " 第一章 ", 1)
	c.SetContent("Hello world")

	assert.Equal(t, "第一章", c.Title)
	assert.Equal(t, 10, c.WordCount)
	assert.Equal(t, StatusDraft, c.Status)
}

func TestNewWorldEntryDefaultsType(t *testing.T) {
	assert.Equal(t, WorldTypeSetting, NewWorldEntry("n", "t", "c", " ").Type)
	assert.Equal(t, "magic", NewWorldEntry("n", "t", "c", "magic").Type)
}
