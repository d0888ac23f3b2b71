package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-studio-api/internal/application/library"
)

func TestDecodeMessage(t *testing.T) {
	msg, err := NewStatsMessage(library.StatsEvent{NovelID: "n1", WordCount: 3, Reason: library.ReasonChapterCreated})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	decoded, err := DecodeMessage(redis.XMessage{ID: "1-0", Values: map[string]any{"data": string(raw)}})
	require.NoError(t, err)
	assert.Equal(t, TypeNovelStatsUpdated, decoded.Type)
	assert.Equal(t, "n1", decoded.NovelID)

	var payload NovelStatsPayload
	require.NoError(t, decoded.UnmarshalPayload(&payload))
	assert.Equal(t, 3, payload.WordCount)
}

func TestDecodeMessageRejectsMalformed(t *testing.T) {
	cases := map[string]map[string]any{
		"missing data": {"type": "x"},
		"not json":     {"data": "{"},
		"no type":      {"data": `{"id":"1"}`},
		"wrong kind":   {"data": 42},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeMessage(redis.XMessage{ID: "1-0", Values: values})
			assert.ErrorIs(t, err, errInvalidMessage)
		})
	}
}

func TestNewConsumerDefaults(t *testing.T) {
	c := NewConsumer(nil, ConsumerConfig{Group: "g"})
	assert.Equal(t, StreamNovelEvents, c.cfg.Stream)
	assert.Equal(t, 3, c.cfg.RetryLimit)
	assert.Equal(t, "stream:novel:events:dlq", c.cfg.Stream.DLQStream())
}

func TestStatsKey(t *testing.T) {
	assert.Equal(t, "novel:stats:n1", StatsKey("n1"))
}

func TestProjectionArgsVersionFollowsCreatedAt(t *testing.T) {
	older, err := NewStatsMessage(library.StatsEvent{NovelID: "n1", WordCount: 5})
	require.NoError(t, err)
	newer, err := NewStatsMessage(library.StatsEvent{NovelID: "n1", WordCount: 8})
	require.NoError(t, err)
	newer.CreatedAt = older.CreatedAt.Add(time.Millisecond)

	assert.Greater(t, statsVersion(newer), statsVersion(older))

	args := projectionArgs(newer, NovelStatsPayload{NovelID: "n1", WordCount: 8, ChapterCount: 2, Status: "writing"}, time.Hour)
	require.Len(t, args, 7)
	assert.Equal(t, newer.CreatedAt.UnixMicro(), args[0])
	assert.Equal(t, 8, args[1])
	assert.Equal(t, 2, args[2])
	assert.EqualValues(t, 3600000, args[6])
}
