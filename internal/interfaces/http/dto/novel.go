package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/domain/entity"
	"novel-studio-api/internal/domain/repository"
)

// CreateNovelRequest 创建小说请求
type CreateNovelRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"coverImage"`
}

// ToInput 转换为应用层参数
func (r *CreateNovelRequest) ToInput() library.CreateNovelInput {
	return library.CreateNovelInput{
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		Tags:        r.Tags,
		CoverImage:  r.CoverImage,
	}
}

// UpdateNovelRequest 更新小说请求，缺省字段保持不变
type UpdateNovelRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	CoverImage  *string   `json:"coverImage"`
}

// ToInput 转换为应用层参数
func (r *UpdateNovelRequest) ToInput() library.UpdateNovelInput {
	in := library.UpdateNovelInput{
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		Status:      toStatus(r.Status),
		CoverImage:  r.CoverImage,
	}
	if r.Tags != nil {
		in.Tags = *r.Tags
		in.TagsSet = true
	}
	return in
}

// NovelDetailResponse 小说详情
type NovelDetailResponse struct {
	*entity.Novel
	Chapters      []*entity.Chapter   `json:"chapters"`
	Characters    []*entity.Character `json:"characters"`
	Outlines      []*entity.Outline   `json:"outlines"`
	WorldBuilding *entity.WorldEntry  `json:"worldBuilding"`
}

// ToNovelDetailResponse 组装详情响应
func ToNovelDetailResponse(d *library.NovelDetail) *NovelDetailResponse {
	return &NovelDetailResponse{
		Novel:         d.Novel,
		Chapters:      nonNil(d.Chapters),
		Characters:    nonNil(d.Characters),
		Outlines:      nonNil(d.Outlines),
		WorldBuilding: d.WorldBuilding,
	}
}

// BindNovelFilter 从查询参数绑定小说过滤条件
func BindNovelFilter(c *gin.Context) *repository.NovelFilter {
	return &repository.NovelFilter{
		Search: c.Query("search"),
		Status: entity.Status(c.Query("status")),
		Tag:    c.Query("tag"),
		Sort:   repository.ParseNovelSortField(c.Query("sort")),
		Order:  repository.ParseSortOrder(c.Query("order")),
	}
}

// BindKeywordFilter 从查询参数绑定子资源过滤条件
func BindKeywordFilter(c *gin.Context) repository.KeywordFilter {
	take, _ := strconv.Atoi(c.Query("take"))
	return repository.KeywordFilter{
		NovelID: c.Query("novelId"),
		Keyword: c.Query("q"),
		Take:    take,
	}
}

func toStatus(s *string) *entity.Status {
	if s == nil {
		return nil
	}
	st := entity.Status(*s)
	return &st
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
