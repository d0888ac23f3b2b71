package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 仅当事件版本不旧于已投影版本时写入，重投递的旧事件不会覆盖新统计
var projectStatsScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'version')
if current and tonumber(current) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1],
	'version', ARGV[1],
	'wordCount', ARGV[2],
	'chapterCount', ARGV[3],
	'status', ARGV[4],
	'reason', ARGV[5],
	'updatedAt', ARGV[6])
redis.call('PEXPIRE', KEYS[1], ARGV[7])
return 1
`)

// StatsProjection 将统计事件投影为 Redis 哈希 novel:stats:{id}，供看板类读取
type StatsProjection struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsProjection 创建统计投影
func NewStatsProjection(client *redis.Client, ttl time.Duration) *StatsProjection {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &StatsProjection{client: client, ttl: ttl}
}

// StatsKey 小说统计快照键
func StatsKey(novelID string) string {
	return "novel:stats:" + novelID
}

// statsVersion 事件版本取创建时间的微秒数，Lua 数值可精确比较
func statsVersion(msg *Message) int64 {
	return msg.CreatedAt.UnixMicro()
}

func projectionArgs(msg *Message, payload NovelStatsPayload, ttl time.Duration) []any {
	return []any{
		statsVersion(msg),
		payload.WordCount,
		payload.ChapterCount,
		payload.Status,
		payload.Reason,
		msg.CreatedAt.UTC().Format(time.RFC3339),
		ttl.Milliseconds(),
	}
}

// Handle 处理 novel.stats_updated 消息
func (p *StatsProjection) Handle(ctx context.Context, msg *Message) error {
	_, err := p.apply(ctx, msg)
	return err
}

// apply 返回本次事件是否写入了投影
func (p *StatsProjection) apply(ctx context.Context, msg *Message) (bool, error) {
	var payload NovelStatsPayload
	if err := msg.UnmarshalPayload(&payload); err != nil {
		return false, fmt.Errorf("decode stats payload: %w", err)
	}
	if payload.NovelID == "" {
		payload.NovelID = msg.NovelID
	}

	key := StatsKey(payload.NovelID)
	written, err := projectStatsScript.Run(ctx, p.client, []string{key}, projectionArgs(msg, payload, p.ttl)...).Int()
	if err != nil {
		return false, fmt.Errorf("write stats projection: %w", err)
	}
	return written == 1, nil
}
