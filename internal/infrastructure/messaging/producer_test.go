package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/domain/entity"
)

func TestNewStatsMessage(t *testing.T) {
	msg, err := NewStatsMessage(library.StatsEvent{
		NovelID:      "n1",
		WordCount:    11,
		ChapterCount: 1,
		Status:       entity.StatusWriting,
		Reason:       library.ReasonChapterCreated,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, TypeNovelStatsUpdated, msg.Type)
	assert.Equal(t, "n1", msg.NovelID)
	assert.Equal(t, library.ReasonChapterCreated, msg.Metadata["reason"])

	var payload NovelStatsPayload
	require.NoError(t, msg.UnmarshalPayload(&payload))
	assert.Equal(t, NovelStatsPayload{
		NovelID: "n1", WordCount: 11, ChapterCount: 1, Status: "writing", Reason: "chapter_created",
	}, payload)
}

func TestNewProducerDefaults(t *testing.T) {
	p := NewProducer(nil, "", 0)
	assert.Equal(t, StreamNovelEvents, p.stream)
	assert.EqualValues(t, 10000, p.maxLen)
}
