package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/interfaces/http/dto"
)

// OutlineHandler 大纲处理器
type OutlineHandler struct {
	outlines *library.OutlineService
}

// NewOutlineHandler 创建大纲处理器
func NewOutlineHandler(outlines *library.OutlineService) *OutlineHandler {
	return &OutlineHandler{outlines: outlines}
}

// ListOutlines 按小说与关键字查询大纲，按顺序升序
// @Summary 获取大纲列表
// @Tags Outlines
// @Produce json
// @Param novelId query string false "小说 ID"
// @Param q query string false "关键字"
// @Param take query int false "数量 1-200" default(50)
// @Success 200 {object} map[string]any
// @Router /api/outlines [get]
func (h *OutlineHandler) ListOutlines(c *gin.Context) {
	outlines, err := h.outlines.List(c.Request.Context(), dto.BindKeywordFilter(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"outlines": outlines})
}

// CreateOutline 创建大纲，未指定顺序时排在末尾
func (h *OutlineHandler) CreateOutline(c *gin.Context) {
	var req dto.CreateOutlineRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	outline, err := h.outlines.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, gin.H{"outline": outline})
}

// UpdateOutline 更新大纲
func (h *OutlineHandler) UpdateOutline(c *gin.Context) {
	var req dto.UpdateOutlineRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	outline, err := h.outlines.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"outline": outline})
}

// DeleteOutline 删除大纲
func (h *OutlineHandler) DeleteOutline(c *gin.Context) {
	if err := h.outlines.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c)
}
