package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
)

var tracer = otel.Tracer("messaging")

// Producer 消息生产者
type Producer struct {
	client *redis.Client
	stream Stream
	maxLen int64
}

// NewProducer 创建消息生产者
func NewProducer(client *redis.Client, stream Stream, maxLen int64) *Producer {
	if maxLen <= 0 {
		maxLen = 10000
	}
	if stream == "" {
		stream = StreamNovelEvents
	}
	return &Producer{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish 发布消息
func (p *Producer) Publish(ctx context.Context, msg *Message) (string, error) {
	ctx, span := tracer.Start(ctx, "producer.Publish",
		trace.WithAttributes(
			attribute.String("stream", string(p.stream)),
			attribute.String("message.id", msg.ID),
			attribute.String("message.type", msg.Type),
		))
	defer span.End()

	data, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: string(p.stream),
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"type": msg.Type,
			"data": string(data),
		},
	}).Result()
	if err != nil {
		span.RecordError(err)
		metrics.RedisStreamPublished.WithLabelValues(string(p.stream), "error").Inc()
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	metrics.RedisStreamPublished.WithLabelValues(string(p.stream), "ok").Inc()
	span.SetAttributes(attribute.String("stream.message_id", result))
	return result, nil
}

// PublishStats 发布小说统计更新事件
func (p *Producer) PublishStats(ctx context.Context, event library.StatsEvent) error {
	msg, err := NewStatsMessage(event)
	if err != nil {
		return err
	}
	withRequestID(ctx, msg)
	_, err = p.Publish(ctx, msg)
	return err
}

// NewStatsMessage 将统计事件转换为消息
func NewStatsMessage(event library.StatsEvent) (*Message, error) {
	msg, err := NewMessage(TypeNovelStatsUpdated, event.NovelID, NovelStatsPayload{
		NovelID:      event.NovelID,
		WordCount:    event.WordCount,
		ChapterCount: event.ChapterCount,
		Status:       string(event.Status),
		Reason:       event.Reason,
	})
	if err != nil {
		return nil, err
	}
	msg.SetMetadata("reason", event.Reason)
	return msg, nil
}

func withRequestID(ctx context.Context, msg *Message) {
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok && reqID != "" {
		msg.SetMetadata("request_id", reqID)
	}
}

var _ library.StatsPublisher = (*Producer)(nil)
