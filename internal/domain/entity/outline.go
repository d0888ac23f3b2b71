package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Outline 大纲实体
type Outline struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NovelID      string    `json:"novelId" gorm:"type:uuid;index;not null"`
	Title        string    `json:"title" gorm:"type:varchar(255);not null"`
	Content      string    `json:"content" gorm:"type:text"`
	ChapterRange string    `json:"chapterRange" gorm:"type:varchar(100)"`
	Order        int       `json:"order" gorm:"column:sort_order;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Outline) TableName() string {
	return "outlines"
}

// NewOutline 创建大纲
func NewOutline(novelID, title, content string, order int) *Outline {
	now := time.Now()
	return &Outline{
		ID:        uuid.New().String(),
		NovelID:   novelID,
		Title:     strings.TrimSpace(title),
		Content:   content,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
