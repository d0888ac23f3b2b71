package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-studio-api/pkg/logger"
	"novel-studio-api/pkg/metrics"
)

// MessageHandler 消息处理函数
type MessageHandler func(ctx context.Context, msg *Message) error

var errInvalidMessage = errors.New("invalid stream message")

// ConsumerConfig 消费者配置
type ConsumerConfig struct {
	Stream       Stream
	Group        string
	ConsumerName string
	BlockTimeout time.Duration
	ReclaimIdle  time.Duration
	RetryLimit   int
}

// Consumer 基于消费者组的 Redis Stream 消费者
type Consumer struct {
	client *redis.Client
	cfg    ConsumerConfig

	handlers map[string]MessageHandler
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewConsumer 创建消息消费者
func NewConsumer(client *redis.Client, cfg ConsumerConfig) *Consumer {
	if cfg.Stream == "" {
		cfg.Stream = StreamNovelEvents
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 5 * time.Second
	}
	if cfg.ReclaimIdle <= 0 {
		cfg.ReclaimIdle = time.Minute
	}
	if cfg.RetryLimit <= 0 {
		cfg.RetryLimit = 3
	}
	return &Consumer{
		client:   client,
		cfg:      cfg,
		handlers: make(map[string]MessageHandler),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// RegisterHandler 注册消息处理器
func (c *Consumer) RegisterHandler(msgType string, handler MessageHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[msgType] = handler
}

// Start 创建消费者组并在后台开始消费
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("consumer already running")
	}
	c.running = true
	c.mu.Unlock()

	err := c.client.XGroupCreateMkStream(ctx, string(c.cfg.Stream), c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	go c.run(ctx)
	return nil
}

// Stop 停止消费并等待循环退出
func (c *Consumer) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()
	<-c.doneCh
}

func (c *Consumer) run(ctx context.Context) {
	defer close(c.doneCh)

	logger.Info(ctx, "consumer started",
		"stream", string(c.cfg.Stream),
		"group", c.cfg.Group,
		"consumer", c.cfg.ConsumerName,
	)

	lastReclaim := time.Time{}
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "consumer stopped due to context cancellation")
			return
		case <-c.stopCh:
			logger.Info(ctx, "consumer stopped")
			return
		default:
		}

		if time.Since(lastReclaim) >= c.cfg.ReclaimIdle {
			c.reclaim(ctx)
			lastReclaim = time.Now()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerName,
			Streams:  []string{string(c.cfg.Stream), ">"},
			Count:    10,
			Block:    c.cfg.BlockTimeout,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			logger.Error(ctx, "failed to read from stream", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, xmsg := range stream.Messages {
				c.process(ctx, xmsg, 1)
			}
		}
	}
}

// process 处理单条消息；失败的消息保留在 PEL 中等待 reclaim 重投
func (c *Consumer) process(ctx context.Context, xmsg redis.XMessage, deliveries int64) {
	ctx, span := tracer.Start(ctx, "consumer.process",
		trace.WithAttributes(
			attribute.String("stream", string(c.cfg.Stream)),
			attribute.String("stream.message_id", xmsg.ID),
			attribute.Int64("stream.deliveries", deliveries),
		))
	defer span.End()

	msg, err := DecodeMessage(xmsg)
	if err != nil {
		logger.Warn(ctx, "dropping malformed message", "message_id", xmsg.ID, "error", err.Error())
		c.consumed("unknown", "malformed")
		c.ack(ctx, xmsg.ID)
		return
	}

	ctx = logger.WithNovelID(ctx, msg.NovelID)
	ctx = logger.WithRequestID(ctx, msg.Metadata["request_id"])
	span.SetAttributes(
		attribute.String("message.id", msg.ID),
		attribute.String("message.type", msg.Type),
	)

	c.mu.RLock()
	handler, ok := c.handlers[msg.Type]
	c.mu.RUnlock()
	if !ok {
		logger.Debug(ctx, "no handler for message type", "type", msg.Type)
		c.consumed(msg.Type, "skipped")
		c.ack(ctx, xmsg.ID)
		return
	}

	if err := handler(ctx, msg); err != nil {
		span.RecordError(err)
		logger.Error(ctx, "message handler failed", err, "message_id", msg.ID, "deliveries", deliveries)
		if deliveries >= int64(c.cfg.RetryLimit) {
			c.moveToDLQ(ctx, xmsg, err)
			c.consumed(msg.Type, "dead_letter")
			c.ack(ctx, xmsg.ID)
			return
		}
		c.consumed(msg.Type, "error")
		return
	}

	c.consumed(msg.Type, "ok")
	c.ack(ctx, xmsg.ID)
}

// reclaim 认领空闲超过 ReclaimIdle 的待确认消息并重新处理
func (c *Consumer) reclaim(ctx context.Context) {
	pending, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: string(c.cfg.Stream),
		Group:  c.cfg.Group,
		Idle:   c.cfg.ReclaimIdle,
		Start:  "-",
		End:    "+",
		Count:  20,
	}).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Error(ctx, "failed to query pending messages", err)
		}
		return
	}

	for _, p := range pending {
		claimed, err := c.client.XClaim(ctx, &redis.XClaimArgs{
			Stream:   string(c.cfg.Stream),
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerName,
			MinIdle:  c.cfg.ReclaimIdle,
			Messages: []string{p.ID},
		}).Result()
		if err != nil {
			logger.Error(ctx, "failed to claim pending message", err, "message_id", p.ID)
			continue
		}
		for _, xmsg := range claimed {
			c.process(ctx, xmsg, p.RetryCount+1)
		}
	}
}

func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, string(c.cfg.Stream), c.cfg.Group, id).Err(); err != nil {
		logger.Error(ctx, "failed to ack message", err, "message_id", id)
	}
}

func (c *Consumer) moveToDLQ(ctx context.Context, xmsg redis.XMessage, cause error) {
	dlq := c.cfg.Stream.DLQStream()
	err := c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: dlq,
		Values: map[string]any{
			"data":            xmsg.Values["data"],
			"original_stream": string(c.cfg.Stream),
			"original_id":     xmsg.ID,
			"error":           cause.Error(),
			"failed_at":       time.Now().Unix(),
		},
	}).Err()
	if err != nil {
		logger.Error(ctx, "failed to move message to DLQ", err, "message_id", xmsg.ID)
		return
	}
	logger.Warn(ctx, "message moved to DLQ", "message_id", xmsg.ID, "dlq", dlq)
}

func (c *Consumer) consumed(msgType, status string) {
	metrics.RedisStreamConsumed.WithLabelValues(string(c.cfg.Stream), msgType, status).Inc()
}

// DecodeMessage 从 stream 条目的 data 字段解析消息
func DecodeMessage(xmsg redis.XMessage) (*Message, error) {
	raw, ok := xmsg.Values["data"].(string)
	if !ok || raw == "" {
		return nil, errInvalidMessage
	}
	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidMessage, err)
	}
	if msg.Type == "" {
		return nil, errInvalidMessage
	}
	return &msg, nil
}
