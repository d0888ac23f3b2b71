package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTakeClamp(t *testing.T) {
	assert.Equal(t, 50, CharacterTake.Clamp(0))
	assert.Equal(t, 50, CharacterTake.Clamp(-3))
	assert.Equal(t, 1, CharacterTake.Clamp(1))
	assert.Equal(t, 200, CharacterTake.Clamp(999))
	assert.Equal(t, 20, WorldTake.Clamp(0))
	assert.Equal(t, 100, WorldTake.Clamp(101))
}

func TestParseNovelSortField(t *testing.T) {
	assert.Equal(t, NovelSortTitle, ParseNovelSortField("title"))
	assert.Equal(t, NovelSortCreatedAt, ParseNovelSortField("createdAt"))
	assert.Equal(t, NovelSortUpdatedAt, ParseNovelSortField(""))
	assert.Equal(t, NovelSortUpdatedAt, ParseNovelSortField("wordCount"))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortOrderAsc, ParseSortOrder("asc"))
	assert.Equal(t, SortOrderDesc, ParseSortOrder("desc"))
	assert.Equal(t, SortOrderDesc, ParseSortOrder(""))
}
