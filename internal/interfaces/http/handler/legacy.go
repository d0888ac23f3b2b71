package handler

import (
	"github.com/gin-gonic/gin"

	"novel-studio-api/internal/interfaces/http/dto"
	apperrors "novel-studio-api/pkg/errors"
)

// LegacySave 旧版保存接口，任何方法都返回 410
func LegacySave(c *gin.Context) {
	dto.Error(c, apperrors.ErrGone)
}
