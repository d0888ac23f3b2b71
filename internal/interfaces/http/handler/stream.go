package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/interfaces/http/dto"
	apperrors "novel-studio-api/pkg/errors"
)

// StreamContinueWriting 以 SSE 流式返回续写内容
// 事件依次为若干 content，最后是 done 或 error。
// @Summary AI 流式续写
// @Tags AI
// @Accept json
// @Produce text/event-stream
// @Param body body dto.ContinueWritingRequest true "续写参数"
// @Success 200 "SSE stream"
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ai/continue-writing/stream [post]
func (h *AssistantHandler) StreamContinueWriting(c *gin.Context) {
	var req dto.ContinueWritingRequest
	if !dto.BindJSON(c, &req) {
		return
	}
	stream, err := h.svc.StreamContinueWriting(c.Request.Context(), req.ToRequest())
	if err != nil {
		dto.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for index := 0; ; index++ {
		if ctx.Err() != nil {
			return
		}
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			c.SSEvent("done", gin.H{
				"content":   stream.Content(),
				"wordCount": stream.WordCount(),
			})
			c.Writer.Flush()
			return
		}
		if err != nil {
			appErr := apperrors.AsAppError(err)
			c.SSEvent("error", dto.ErrorResponse{Error: appErr.Message, Details: appErr.Details()})
			c.Writer.Flush()
			return
		}
		c.SSEvent("content", gin.H{"chunk": chunk, "index": index})
		c.Writer.Flush()
	}
}
