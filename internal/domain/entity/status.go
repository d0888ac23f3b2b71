// Package entity 定义领域实体
package entity

// Status 小说与章节共用的写作状态
type Status string

const (
	StatusDraft     Status = "draft"
	StatusWriting   Status = "writing"
	StatusCompleted Status = "completed"
	StatusPublished Status = "published"
)

// Statuses 返回全部合法状态
func Statuses() []Status {
	return []Status{StatusDraft, StatusWriting, StatusCompleted, StatusPublished}
}

// IsValid 检查状态是否合法
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusWriting, StatusCompleted, StatusPublished:
		return true
	}
	return false
}
