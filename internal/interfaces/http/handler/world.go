package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/interfaces/http/dto"
)

// WorldHandler 世界观处理器
type WorldHandler struct {
	worlds *library.WorldService
}

// NewWorldHandler 创建世界观处理器
func NewWorldHandler(worlds *library.WorldService) *WorldHandler {
	return &WorldHandler{worlds: worlds}
}

// ListWorlds 查询世界观设定
// @Summary 获取世界观列表
// @Tags Worlds
// @Produce json
// @Param novelId query string false "小说 ID"
// @Param q query string false "关键字"
// @Param take query int false "数量 1-100" default(20)
// @Success 200 {object} map[string]any
// @Router /api/worlds [get]
func (h *WorldHandler) ListWorlds(c *gin.Context) {
	worlds, err := h.worlds.List(c.Request.Context(), dto.BindKeywordFilter(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"worlds": worlds})
}

func (h *WorldHandler) CreateWorld(c *gin.Context) {
	var req dto.CreateWorldRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	world, err := h.worlds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, gin.H{"world": world})
}

func (h *WorldHandler) UpdateWorld(c *gin.Context) {
	var req dto.UpdateWorldRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	world, err := h.worlds.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"world": world})
}

func (h *WorldHandler) DeleteWorld(c *gin.Context) {
	if err := h.worlds.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c)
}
