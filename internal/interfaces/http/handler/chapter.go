package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/interfaces/http/dto"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	chapters *library.ChapterService
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(chapters *library.ChapterService) *ChapterHandler {
	return &ChapterHandler{chapters: chapters}
}

// ListChapters 获取小说的章节列表，按顺序升序
// @Summary 获取章节列表
// @Tags Chapters
// @Produce json
// @Param id path string true "小说 ID"
// @Success 200 {object} map[string]any
// @Router /api/novels/{id}/chapters [get]
func (h *ChapterHandler) ListChapters(c *gin.Context) {
	chapters, err := h.chapters.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"chapters": chapters})
}

// CreateChapter 创建章节并重算小说统计
// @Summary 创建章节
// @Tags Chapters
// @Accept json
// @Produce json
// @Param id path string true "小说 ID"
// @Param body body dto.CreateChapterRequest true "章节信息"
// @Success 201 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/novels/{id}/chapters [post]
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	var req dto.CreateChapterRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	result, err := h.chapters.Create(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, gin.H{"chapter": result.Chapter, "novel": result.Novel})
}

// ReorderChapters 批量调整章节顺序
// @Summary 章节排序
// @Tags Chapters
// @Accept json
// @Produce json
// @Param id path string true "小说 ID"
// @Param body body dto.ReorderChaptersRequest true "完整的章节 ID 顺序"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/novels/{id}/chapters [patch]
func (h *ChapterHandler) ReorderChapters(c *gin.Context) {
	var req dto.ReorderChaptersRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	chapters, err := h.chapters.Reorder(c.Request.Context(), c.Param("id"), req.ChapterIDs)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"chapters": chapters})
}

// GetChapter 获取章节
// @Summary 获取章节
// @Tags Chapters
// @Produce json
// @Param id path string true "章节 ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{id} [get]
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	chapter, err := h.chapters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"chapter": chapter})
}

// UpdateChapter 更新章节，内容变化时重算字数
// @Summary 更新章节
// @Tags Chapters
// @Accept json
// @Produce json
// @Param id path string true "章节 ID"
// @Param body body dto.UpdateChapterRequest true "更新字段"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{id} [put]
func (h *ChapterHandler) UpdateChapter(c *gin.Context) {
	var req dto.UpdateChapterRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	result, err := h.chapters.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"chapter": result.Chapter, "novel": result.Novel})
}

// DeleteChapter 删除章节
// @Summary 删除章节
// @Tags Chapters
// @Param id path string true "章节 ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/chapters/{id} [delete]
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	novel, err := h.chapters.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"novel": novel})
}
