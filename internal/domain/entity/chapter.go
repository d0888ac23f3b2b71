package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"novel-studio-api/pkg/wordcount"
)

// Chapter 章节实体
type Chapter struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NovelID   string    `json:"novelId" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	WordCount int       `json:"wordCount" gorm:"default:0"`
	Status    Status    `json:"status" gorm:"type:varchar(32);default:'draft'"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;index"`
	Summary   string    `json:"summary" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Chapter) TableName() string {
	return "chapters"
}

// NewChapter 创建新章节
func NewChapter(novelID, title string, order int) *Chapter {
	now := time.Now()
	return &Chapter{
		ID:        uuid.New().String(),
		NovelID:   novelID,
		Title:     strings.TrimSpace(title),
		Status:    StatusDraft,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetContent 设置章节内容，字数总是由内容推导
func (c *Chapter) SetContent(content string) {
	c.Content = content
	c.WordCount = wordcount.Count(content)
	c.UpdatedAt = time.Now()
}
