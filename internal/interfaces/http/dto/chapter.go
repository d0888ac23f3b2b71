package dto

import (
	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/domain/entity"
)

// CreateChapterRequest 创建章节请求
type CreateChapterRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
	Order   *int   `json:"order"`
}

// ToInput 转换为应用层参数
func (r *CreateChapterRequest) ToInput() library.CreateChapterInput {
	return library.CreateChapterInput{
		Title:   r.Title,
		Content: r.Content,
		Summary: r.Summary,
		Status:  entity.Status(r.Status),
		Order:   r.Order,
	}
}

// UpdateChapterRequest 更新章节请求
type UpdateChapterRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Summary *string `json:"summary"`
	Status  *string `json:"status"`
	Order   *int    `json:"order"`
}

// ToInput 转换为应用层参数
func (r *UpdateChapterRequest) ToInput() library.UpdateChapterInput {
	return library.UpdateChapterInput{
		Title:   r.Title,
		Content: r.Content,
		Summary: r.Summary,
		Status:  toStatus(r.Status),
		Order:   r.Order,
	}
}

// ReorderChaptersRequest 章节排序请求
type ReorderChaptersRequest struct {
	ChapterIDs []string `json:"chapterIds"`
}
