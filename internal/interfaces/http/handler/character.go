package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/application/library"
	"novel-studio-api/internal/interfaces/http/dto"
)

// CharacterHandler 角色处理器
type CharacterHandler struct {
	characters *library.CharacterService
}

// NewCharacterHandler 创建角色处理器
func NewCharacterHandler(characters *library.CharacterService) *CharacterHandler {
	return &CharacterHandler{characters: characters}
}

// ListCharacters 按小说与关键字查询角色
// @Summary 获取角色列表
// @Tags Characters
// @Produce json
// @Param novelId query string false "小说 ID"
// @Param q query string false "关键字"
// @Param take query int false "数量 1-200" default(50)
// @Success 200 {object} map[string]any
// @Router /api/characters [get]
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	characters, err := h.characters.List(c.Request.Context(), dto.BindKeywordFilter(c))
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"characters": characters})
}

// CreateCharacter 创建角色
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	var req dto.CreateCharacterRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	character, err := h.characters.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, gin.H{"character": character})
}

// UpdateCharacter 更新角色
func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	var req dto.UpdateCharacterRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	character, err := h.characters.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Success(c, gin.H{"character": character})
}

// DeleteCharacter 删除角色
func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	if err := h.characters.Delete(c.Request.Context(), c.Param("id")); err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c)
}
