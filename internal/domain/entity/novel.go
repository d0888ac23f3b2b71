package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// NovelStats 小说聚合统计
type NovelStats struct {
	WordCount    int `json:"wordCount"`
	ChapterCount int `json:"chapterCount"`
}

// Novel 小说实体
type Novel struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string         `json:"title" gorm:"type:varchar(255);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Genre        string         `json:"genre" gorm:"type:varchar(100)"`
	Status       Status         `json:"status" gorm:"type:varchar(32);default:'draft';index"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	CoverImage   string         `json:"coverImage" gorm:"type:text"`
	WordCount    int            `json:"wordCount" gorm:"default:0"`
	ChapterCount int            `json:"chapterCount" gorm:"default:0"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updatedAt" gorm:"autoUpdateTime;index"`
}

// TableName 指定表名
func (Novel) TableName() string {
	return "novels"
}

// NewNovel 创建新小说，初始为草稿且统计为零
func NewNovel(title string) *Novel {
	now := time.Now()
	return &Novel{
		ID:        uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Status:    StatusDraft,
		Tags:      pq.StringArray{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Stats 返回当前持久化的统计
func (n *Novel) Stats() NovelStats {
	return NovelStats{WordCount: n.WordCount, ChapterCount: n.ChapterCount}
}

// ApplyStats 写入统计并推导状态，返回是否有变化
func (n *Novel) ApplyStats(stats NovelStats) bool {
	status := DeriveNovelStatus(n.Status, stats)
	changed := n.WordCount != stats.WordCount || n.ChapterCount != stats.ChapterCount || n.Status != status
	n.WordCount = stats.WordCount
	n.ChapterCount = stats.ChapterCount
	n.Status = status
	return changed
}

// DeriveNovelStatus 根据章节统计推导小说状态
// 草稿在出现有内容的章节后进入写作中；写作中的小说章节清空后退回草稿。
// 已完成与已发布由作者手动设置，不受统计影响。
func DeriveNovelStatus(current Status, stats NovelStats) Status {
	switch current {
	case StatusDraft:
		if stats.ChapterCount > 0 && stats.WordCount > 0 {
			return StatusWriting
		}
	case StatusWriting:
		if stats.ChapterCount == 0 {
			return StatusDraft
		}
	case "":
		return StatusDraft
	}
	return current
}

// NormalizeTags 去除空白与重复标签，保持原有顺序
func NormalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// HasTag 检查是否包含标签
func (n *Novel) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
