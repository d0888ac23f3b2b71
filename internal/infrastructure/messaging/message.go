// Package messaging 提供基于 Redis Stream 的事件发布与消费
package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message 消息结构
type Message struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	NovelID   string            `json:"novel_id"`
	Payload   json.RawMessage   `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewMessage 创建新消息
func NewMessage(msgType, novelID string, payload any) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:        uuid.NewString(),
		Type:      msgType,
		NovelID:   novelID,
		Payload:   payloadBytes,
		Metadata:  make(map[string]string),
		CreatedAt: time.Now(),
	}, nil
}

// SetMetadata 设置元数据
func (m *Message) SetMetadata(key, value string) {
	if m.Metadata == nil {
		m.Metadata = make(map[string]string)
	}
	m.Metadata[key] = value
}

// UnmarshalPayload 解析消息载荷
func (m *Message) UnmarshalPayload(v any) error {
	return json.Unmarshal(m.Payload, v)
}

// Stream 流定义
type Stream string

// StreamNovelEvents 默认的小说事件流
const StreamNovelEvents Stream = "stream:novel:events"

// DLQStream 死信队列流名
func (s Stream) DLQStream() string {
	return string(s) + ":dlq"
}

// 消息类型
const (
	TypeNovelStatsUpdated = "novel.stats_updated"
)

// NovelStatsPayload 统计更新事件载荷
type NovelStatsPayload struct {
	NovelID      string `json:"novelId"`
	WordCount    int    `json:"wordCount"`
	ChapterCount int    `json:"chapterCount"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
}
