package dto

import "novel-studio-api/internal/application/assistant"

// ModelOptions 请求级模型参数
type ModelOptions struct {
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float32 `json:"temperature"`
	MaxTokens   *int     `json:"maxTokens"`
	TopP        *float32 `json:"topP"`
}

func (o ModelOptions) toOptions() assistant.Options {
	return assistant.Options{
		Provider:    o.Provider,
		Model:       o.Model,
		Temperature: o.Temperature,
		MaxTokens:   o.MaxTokens,
		TopP:        o.TopP,
	}
}

// ContinueWritingRequest 续写请求
type ContinueWritingRequest struct {
	Content   string `json:"content"`
	Context   string `json:"context"`
	Style     string `json:"style"`
	Direction string `json:"direction"`
	Length    int    `json:"length"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *ContinueWritingRequest) ToRequest() assistant.ContinueRequest {
	return assistant.ContinueRequest{
		Content:   r.Content,
		Context:   r.Context,
		Style:     r.Style,
		Direction: r.Direction,
		Length:    r.Length,
		Options:   r.toOptions(),
	}
}

// ReviewRequest 审稿请求
type ReviewRequest struct {
	Content string   `json:"content"`
	Focus   []string `json:"focus"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *ReviewRequest) ToRequest() assistant.ReviewRequest {
	return assistant.ReviewRequest{Content: r.Content, Focus: r.Focus, Options: r.toOptions()}
}

// NamingRequest 命名请求
type NamingRequest struct {
	Type       string `json:"type"`
	Gender     string `json:"gender"`
	Style      string `json:"style"`
	Keywords   string `json:"keywords"`
	Background string `json:"background"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *NamingRequest) ToRequest() assistant.NamingRequest {
	return assistant.NamingRequest{
		Type:       r.Type,
		Gender:     r.Gender,
		Style:      r.Style,
		Keywords:   r.Keywords,
		Background: r.Background,
		Options:    r.toOptions(),
	}
}

// DeconstructRequest 拆书请求
type DeconstructRequest struct {
	Content string `json:"content"`
	Scope   string `json:"scope"`
	Title   string `json:"title"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *DeconstructRequest) ToRequest() assistant.DeconstructRequest {
	return assistant.DeconstructRequest{Content: r.Content, Scope: r.Scope, Title: r.Title, Options: r.toOptions()}
}

// GenerateNovelRequest 小说生成请求
type GenerateNovelRequest struct {
	Prompt string `json:"prompt"`
	Genre  string `json:"genre"`
	Style  string `json:"style"`
	Length string `json:"length"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *GenerateNovelRequest) ToRequest() assistant.NovelRequest {
	return assistant.NovelRequest{Prompt: r.Prompt, Genre: r.Genre, Style: r.Style, Length: r.Length, Options: r.toOptions()}
}

// GenerateCharacterRequest 角色生成请求
type GenerateCharacterRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Personality  string `json:"personality"`
	Background   string `json:"background"`
	StoryContext string `json:"storyContext"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *GenerateCharacterRequest) ToRequest() assistant.CharacterRequest {
	return assistant.CharacterRequest{
		Name:         r.Name,
		Role:         r.Role,
		Personality:  r.Personality,
		Background:   r.Background,
		StoryContext: r.StoryContext,
		Options:      r.toOptions(),
	}
}

// GenerateOutlineRequest 大纲生成请求
type GenerateOutlineRequest struct {
	Title        string   `json:"title"`
	Genre        string   `json:"genre"`
	MainPlot     string   `json:"mainPlot"`
	Characters   []string `json:"characters"`
	ChapterCount int      `json:"chapterCount"`
	Style        string   `json:"style"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *GenerateOutlineRequest) ToRequest() assistant.OutlineRequest {
	return assistant.OutlineRequest{
		Title:        r.Title,
		Genre:        r.Genre,
		MainPlot:     r.MainPlot,
		Characters:   r.Characters,
		ChapterCount: r.ChapterCount,
		Style:        r.Style,
		Options:      r.toOptions(),
	}
}

// GenerateWorldRequest 世界观生成请求
type GenerateWorldRequest struct {
	WorldName  string `json:"worldName"`
	WorldType  string `json:"worldType"`
	TimePeriod string `json:"timePeriod"`
	Technology string `json:"technology"`
	Magic      string `json:"magic"`
	Geography  string `json:"geography"`
	Culture    string `json:"culture"`
	Politics   string `json:"politics"`
	Religion   string `json:"religion"`
	Additional string `json:"additional"`
	ModelOptions
}

// ToRequest 转换为应用层请求
func (r *GenerateWorldRequest) ToRequest() assistant.WorldRequest {
	return assistant.WorldRequest{
		WorldName:  r.WorldName,
		WorldType:  r.WorldType,
		TimePeriod: r.TimePeriod,
		Technology: r.Technology,
		Magic:      r.Magic,
		Geography:  r.Geography,
		Culture:    r.Culture,
		Politics:   r.Politics,
		Religion:   r.Religion,
		Additional: r.Additional,
		Options:    r.toOptions(),
	}
}
