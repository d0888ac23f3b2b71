package router

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/interfaces/http/handler"
)

// RegisterLibraryRoutes 注册作品库路由
func RegisterLibraryRoutes(api *gin.RouterGroup, h *Handlers) {
	novels := api.Group("/novels")
	{
		novels.GET("", h.Novel.ListNovels)
		novels.POST("", h.Novel.CreateNovel)
		novels.GET("/:id", h.Novel.GetNovel)
		novels.PUT("/:id", h.Novel.UpdateNovel)
		novels.DELETE("/:id", h.Novel.DeleteNovel)
		novels.POST("/:id/recalculate", h.Novel.RecalculateStats)

		novels.GET("/:id/chapters", h.Chapter.ListChapters)
		novels.POST("/:id/chapters", h.Chapter.CreateChapter)
		novels.PATCH("/:id/chapters", h.Chapter.ReorderChapters)
	}

	chapters := api.Group("/chapters")
	{
		chapters.GET("/:id", h.Chapter.GetChapter)
		chapters.PUT("/:id", h.Chapter.UpdateChapter)
		chapters.DELETE("/:id", h.Chapter.DeleteChapter)
	}

	characters := api.Group("/characters")
	{
		characters.GET("", h.Character.ListCharacters)
		characters.POST("", h.Character.CreateCharacter)
		characters.PUT("/:id", h.Character.UpdateCharacter)
		characters.DELETE("/:id", h.Character.DeleteCharacter)
	}

	outlines := api.Group("/outlines")
	{
		outlines.GET("", h.Outline.ListOutlines)
		outlines.POST("", h.Outline.CreateOutline)
		outlines.PUT("/:id", h.Outline.UpdateOutline)
		outlines.DELETE("/:id", h.Outline.DeleteOutline)
	}

	worlds := api.Group("/worlds")
	{
		worlds.GET("", h.World.ListWorlds)
		worlds.POST("", h.World.CreateWorld)
		worlds.PUT("/:id", h.World.UpdateWorld)
		worlds.DELETE("/:id", h.World.DeleteWorld)
	}

	// 旧版保存接口已废弃
	api.Any("/novel/save", handler.LegacySave)
}

// RegisterAIRoutes 注册 AI 助手路由，所有调用模型的接口共用一个限流中间件
func RegisterAIRoutes(api *gin.RouterGroup, h *handler.AssistantHandler, limit gin.HandlerFunc) {
	ai := api.Group("/ai", limit)
	{
		ai.POST("/continue-writing", h.ContinueWriting)
		ai.POST("/continue-writing/stream", h.StreamContinueWriting)
		ai.POST("/review", h.Review)
		ai.POST("/naming", h.Naming)
		ai.POST("/deconstruct", h.Deconstruct)
		ai.POST("/generate-character", h.GenerateCharacter)
		ai.POST("/generate-outline", h.GenerateOutline)
		ai.POST("/generate-world", h.GenerateWorld)
	}

	api.GET("/novel/generate", h.DescribeGenerateNovel)
	api.POST("/novel/generate", limit, h.GenerateNovel)
}
