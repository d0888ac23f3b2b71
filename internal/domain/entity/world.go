package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WorldTypeSetting 世界观条目默认类型
const WorldTypeSetting = "setting"

// WorldEntry 世界观条目
type WorldEntry struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NovelID   string    `json:"novelId" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Type      string    `json:"type" gorm:"type:varchar(64);default:'setting'"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (WorldEntry) TableName() string {
	return "world_entries"
}

// NewWorldEntry 创建世界观条目，类型为空时使用 setting
func NewWorldEntry(novelID, title, content, kind string) *WorldEntry {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = WorldTypeSetting
	}
	now := time.Now()
	return &WorldEntry{
		ID:        uuid.New().String(),
		NovelID:   novelID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		Type:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
