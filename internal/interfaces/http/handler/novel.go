// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/interfaces/http/dto"
	"novel-studio-api/pkg/logger"
)

// NovelHandler 小说处理器
type NovelHandler struct {
	novels *library.NovelService
}

// NewNovelHandler 创建小说处理器
func NewNovelHandler(novels *library.NovelService) *NovelHandler {
	return &NovelHandler{novels: novels}
}

// ListNovels 获取小说列表
// @Summary 获取小说列表
// @Tags Novels
// @Produce json
// @Param search query string false "标题或简介关键字"
// @Param status query string false "状态"
// @Param tag query string false "标签"
// @Param sort query string false "排序字段 updatedAt|createdAt|title"
// @Param order query string false "排序方向 asc|desc"
// @Success 200 {object} map[string]any
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/novels [get]
func (h *NovelHandler) ListNovels(c *gin.Context) {
	novels, err := h.novels.List(c.Request.Context(), dto.BindNovelFilter(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"novels": novels})
}

// CreateNovel 创建小说
// @Summary 创建小说
// @Tags Novels
// @Accept json
// @Produce json
// @Param body body dto.CreateNovelRequest true "小说信息"
// @Success 201 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/novels [post]
func (h *NovelHandler) CreateNovel(c *gin.Context) {
	var req dto.CreateNovelRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	novel, err := h.novels.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, gin.H{"novel": novel})
}

// GetNovel 获取小说详情及章节、角色、大纲、世界观
// @Summary 获取小说详情
// @Tags Novels
// @Produce json
// @Param id path string true "小说 ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/novels/{id} [get]
func (h *NovelHandler) GetNovel(c *gin.Context) {
	ctx := logger.WithNovelID(c.Request.Context(), c.Param("id"))
	detail, err := h.novels.GetDetail(ctx, c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"novel": dto.ToNovelDetailResponse(detail)})
}

// UpdateNovel 更新小说
// @Summary 更新小说
// @Tags Novels
// @Accept json
// @Produce json
// @Param id path string true "小说 ID"
// @Param body body dto.UpdateNovelRequest true "更新字段"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/novels/{id} [put]
func (h *NovelHandler) UpdateNovel(c *gin.Context) {
	var req dto.UpdateNovelRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	novel, err := h.novels.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"novel": novel})
}

// DeleteNovel 删除小说及其全部子资源
// @Summary 删除小说
// @Tags Novels
// @Param id path string true "小说 ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/novels/{id} [delete]
func (h *NovelHandler) DeleteNovel(c *gin.Context) {
	if err := h.novels.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c)
}

// RecalculateStats 按当前章节重算小说字数与章节数
// @Summary 重算小说统计
// @Tags Novels
// @Produce json
// @Param id path string true "小说 ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/novels/{id}/recalculate [post]
func (h *NovelHandler) RecalculateStats(c *gin.Context) {
	ctx := logger.WithNovelID(c.Request.Context(), c.Param("id"))
	novel, err := h.novels.Recalculate(ctx, c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"novel": novel})
}
