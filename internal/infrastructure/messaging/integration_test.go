//go:build integration

package messaging

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novel-studio-api/internal/application/library"
)

// 形如 localhost:6379
const redisAddrEnv = "NOVEL_STUDIO_TEST_REDIS_ADDR"

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv(redisAddrEnv)
	if addr == "" {
		t.Skipf("%s not set", redisAddrEnv)
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newTestConsumer(t *testing.T, client *redis.Client, retryLimit int) *Consumer {
	t.Helper()
	ctx := context.Background()
	stream := Stream("test:novel:events:" + uuid.NewString())
	t.Cleanup(func() { client.Del(ctx, string(stream), stream.DLQStream()) })

	c := NewConsumer(client, ConsumerConfig{
		Stream:       stream,
		Group:        "stats",
		ConsumerName: "worker-1",
		ReclaimIdle:  time.Millisecond,
		RetryLimit:   retryLimit,
	})
	require.NoError(t, client.XGroupCreateMkStream(ctx, string(stream), "stats", "0").Err())
	return c
}

func publishStats(t *testing.T, client *redis.Client, stream Stream, wordCount int) {
	t.Helper()
	msg, err := NewStatsMessage(library.StatsEvent{NovelID: "n1", WordCount: wordCount})
	require.NoError(t, err)
	_, err = NewProducer(client, stream, 100).Publish(context.Background(), msg)
	require.NoError(t, err)
}

func readOne(t *testing.T, client *redis.Client, c *Consumer, consumer string) redis.XMessage {
	t.Helper()
	streams, err := client.XReadGroup(context.Background(), &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: consumer,
		Streams:  []string{string(c.cfg.Stream), ">"},
		Count:    1,
		Block:    time.Second,
	}).Result()
	require.NoError(t, err)
	require.Len(t, streams, 1)
	require.Len(t, streams[0].Messages, 1)
	return streams[0].Messages[0]
}

func TestStatsProjectionIgnoresStaleEvents(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	novelID := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, StatsKey(novelID)) })

	older, err := NewStatsMessage(library.StatsEvent{NovelID: novelID, WordCount: 5, ChapterCount: 1})
	require.NoError(t, err)
	newer, err := NewStatsMessage(library.StatsEvent{NovelID: novelID, WordCount: 9, ChapterCount: 2})
	require.NoError(t, err)
	newer.CreatedAt = older.CreatedAt.Add(time.Second)

	p := NewStatsProjection(client, time.Minute)
	written, err := p.apply(ctx, newer)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = p.apply(ctx, older)
	require.NoError(t, err)
	assert.False(t, written)

	// 同一事件重投递仍可写入
	require.NoError(t, p.Handle(ctx, newer))

	fields, err := client.HGetAll(ctx, StatsKey(novelID)).Result()
	require.NoError(t, err)
	assert.Equal(t, "9", fields["wordCount"])
	assert.Equal(t, "2", fields["chapterCount"])

	ttl, err := client.PTTL(ctx, StatsKey(novelID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestConsumerMovesExhaustedMessageToDLQ(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	c := newTestConsumer(t, client, 1)
	c.RegisterHandler(TypeNovelStatsUpdated, func(context.Context, *Message) error {
		return errors.New("projection down")
	})

	publishStats(t, client, c.cfg.Stream, 3)
	xmsg := readOne(t, client, c, c.cfg.ConsumerName)
	c.process(ctx, xmsg, 1)

	dead, err := client.XRange(ctx, c.cfg.Stream.DLQStream(), "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, dead, 1)
	assert.Equal(t, xmsg.ID, dead[0].Values["original_id"])
	assert.Equal(t, "projection down", dead[0].Values["error"])

	pending, err := client.XPending(ctx, string(c.cfg.Stream), c.cfg.Group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}

func TestConsumerKeepsFailedMessagePendingUnderRetryLimit(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	c := newTestConsumer(t, client, 3)
	c.RegisterHandler(TypeNovelStatsUpdated, func(context.Context, *Message) error {
		return errors.New("projection down")
	})

	publishStats(t, client, c.cfg.Stream, 3)
	c.process(ctx, readOne(t, client, c, c.cfg.ConsumerName), 1)

	pending, err := client.XPending(ctx, string(c.cfg.Stream), c.cfg.Group).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.Count)

	n, err := client.XLen(ctx, c.cfg.Stream.DLQStream()).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConsumerReclaimRedeliversIdleMessage(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	c := newTestConsumer(t, client, 3)

	var handled atomic.Int32
	c.RegisterHandler(TypeNovelStatsUpdated, func(_ context.Context, msg *Message) error {
		handled.Add(1)
		assert.Equal(t, "n1", msg.NovelID)
		return nil
	})

	publishStats(t, client, c.cfg.Stream, 7)
	// 另一消费者读取后崩溃，未确认
	readOne(t, client, c, "worker-crashed")
	time.Sleep(10 * time.Millisecond)

	c.reclaim(ctx)

	assert.EqualValues(t, 1, handled.Load())
	pending, err := client.XPending(ctx, string(c.cfg.Stream), c.cfg.Group).Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)
}
