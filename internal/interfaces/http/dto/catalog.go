package dto

import "novel-studio-api/internal/application/library"

// CreateCharacterRequest 创建角色请求
type CreateCharacterRequest struct {
	NovelID       string `json:"novelId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Personality   string `json:"personality"`
	Background    string `json:"background"`
	Relationships string `json:"relationships"`
	Avatar        string `json:"avatar"`
}

// ToInput 转换为应用层参数
func (r *CreateCharacterRequest) ToInput() library.CreateCharacterInput {
	return library.CreateCharacterInput{
		NovelID:       r.NovelID,
		Name:          r.Name,
		Description:   r.Description,
		Personality:   r.Personality,
		Background:    r.Background,
		Relationships: r.Relationships,
		Avatar:        r.Avatar,
	}
}

// UpdateCharacterRequest 更新角色请求
type UpdateCharacterRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Personality   *string `json:"personality"`
	Background    *string `json:"background"`
	Relationships *string `json:"relationships"`
	Avatar        *string `json:"avatar"`
}

// ToInput 转换为应用层参数
func (r *UpdateCharacterRequest) ToInput() library.UpdateCharacterInput {
	return library.UpdateCharacterInput{
		Name:          r.Name,
		Description:   r.Description,
		Personality:   r.Personality,
		Background:    r.Background,
		Relationships: r.Relationships,
		Avatar:        r.Avatar,
	}
}

// CreateOutlineRequest 创建大纲请求
type CreateOutlineRequest struct {
	NovelID      string `json:"novelId"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ChapterRange string `json:"chapterRange"`
	Order        *int   `json:"order"`
}

// ToInput 转换为应用层参数
func (r *CreateOutlineRequest) ToInput() library.CreateOutlineInput {
	return library.CreateOutlineInput{
		NovelID:      r.NovelID,
		Title:        r.Title,
		Content:      r.Content,
		ChapterRange: r.ChapterRange,
		Order:        r.Order,
	}
}

// UpdateOutlineRequest 更新大纲请求
type UpdateOutlineRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	ChapterRange *string `json:"chapterRange"`
	Order        *int    `json:"order"`
}

// ToInput 转换为应用层参数
func (r *UpdateOutlineRequest) ToInput() library.UpdateOutlineInput {
	return library.UpdateOutlineInput{
		Title:        r.Title,
		Content:      r.Content,
		ChapterRange: r.ChapterRange,
		Order:        r.Order,
	}
}

// CreateWorldRequest 创建世界观请求
type CreateWorldRequest struct {
	NovelID string `json:"novelId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// ToInput 转换为应用层参数
func (r *CreateWorldRequest) ToInput() library.CreateWorldInput {
	return library.CreateWorldInput{NovelID: r.NovelID, Title: r.Title, Content: r.Content, Type: r.Type}
}

// UpdateWorldRequest 更新世界观请求
type UpdateWorldRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Type    *string `json:"type"`
}

// ToInput 转换为应用层参数
func (r *UpdateWorldRequest) ToInput() library.UpdateWorldInput {
	return library.UpdateWorldInput{Title: r.Title, Content: r.Content, Type: r.Type}
}
