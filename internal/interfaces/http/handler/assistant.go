package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/assistant"
	"novel-studio-api/internal/interfaces/http/dto"
)

// AssistantHandler AI 写作助手处理器
type AssistantHandler struct {
	svc *assistant.Service
}

// NewAssistantHandler 创建 AI 写作助手处理器
func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// ContinueWriting 续写
// @Summary AI 续写
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.ContinueWritingRequest true "续写参数"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/continue-writing [post]
func (h *AssistantHandler) ContinueWriting(c *gin.Context) {
	var req dto.ContinueWritingRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	out, err := h.svc.ContinueWriting(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"content": out.Content, "wordCount": out.WordCount})
}

// Review 审稿
// @Summary AI 审稿
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.ReviewRequest true "审稿参数"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/review [post]
func (h *AssistantHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	review, err := h.svc.Review(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"review": review})
}

// Naming 命名建议
// @Summary AI 命名
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.NamingRequest true "命名参数"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ai/naming [post]
func (h *AssistantHandler) Naming(c *gin.Context) {
	var req dto.NamingRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	suggestions, err := h.svc.Naming(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"suggestions": suggestions})
}

// Deconstruct 拆书分析
// @Summary AI 拆书
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.DeconstructRequest true "拆书参数"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ai/deconstruct [post]
func (h *AssistantHandler) Deconstruct(c *gin.Context) {
	var req dto.DeconstructRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	analysis, err := h.svc.Deconstruct(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"analysis": analysis})
}

// GenerateNovel 按创作提示生成小说
// @Summary AI 生成小说
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.GenerateNovelRequest true "生成参数"
// @Success 200 {object} map[string]any
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/novel/generate [post]
func (h *AssistantHandler) GenerateNovel(c *gin.Context) {
	var req dto.GenerateNovelRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	out, err := h.svc.GenerateNovel(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"content": out.Content, "metadata": out.Metadata})
}

// DescribeGenerateNovel 小说生成接口说明
func (h *AssistantHandler) DescribeGenerateNovel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AI 小说生成 API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"POST /api/novel/generate": "生成小说内容",
		},
		"parameters": gin.H{
			"prompt": "创作提示 (必需)",
			"genre":  "小说类型 (可选)",
			"style":  "写作风格 (可选)",
			"length": "篇幅长度 (可选)",
		},
	})
}

// GenerateCharacter 生成角色档案
func (h *AssistantHandler) GenerateCharacter(c *gin.Context) {
	var req dto.GenerateCharacterRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	text, err := h.svc.GenerateCharacter(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"character": text})
}

// GenerateOutline 生成故事大纲
func (h *AssistantHandler) GenerateOutline(c *gin.Context) {
	var req dto.GenerateOutlineRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	text, err := h.svc.GenerateOutline(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"outline": text})
}

// GenerateWorld 生成世界观设定
func (h *AssistantHandler) GenerateWorld(c *gin.Context) {
	var req dto.GenerateWorldRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	text, err := h.svc.GenerateWorld(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"world": text})
}
