package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "novel-studio-api/pkg/errors"
	"novel-studio-api/pkg/logger"
)

// Recovery 捕获 panic 并返回 500。
// SSE 续写已开始输出时无法再写 JSON，只记录日志并中断连接
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", err),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": apperrors.ErrInternalError.Message,
				})
			}
		}()

		c.Next()
	}
}
