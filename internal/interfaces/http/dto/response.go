// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Success 返回 200，响应体为 success 标记与给定字段
func Success(c *gin.Context, fields gin.H) {
	respond(c, http.StatusOK, fields)
}

// Created 返回 201
func Created(c *gin.Context, fields gin.H) {
	respond(c, http.StatusCreated, fields)
}

// OK 返回仅含 success 标记的响应
func OK(c *gin.Context) {
	respond(c, http.StatusOK, nil)
}

func respond(c *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error 把错误转换为 {error, details} 响应
// details 取自 Detail 或底层错误，任意状态码都会返回；5xx 另外记录日志，未知错误改用通用消息。
func Error(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	resp := ErrorResponse{Error: appErr.Message, Details: appErr.Details()}
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.FullPath(),
			"code", string(appErr.Code),
		)
		if appErr.Code == apperrors.CodeUnknown {
			resp.Error = apperrors.ErrInternalError.Message
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

// BadRequest 返回 400
func BadRequest(c *gin.Context, message string) {
	Error(c, apperrors.Validation(message))
}

// BindJSON 解析请求体，失败时写入 400 并返回 false
func BindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		Error(c, apperrors.Validation("请求体格式错误").WithDetail(err.Error()))
		return false
	}
	return true
}
