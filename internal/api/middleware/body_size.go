package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/pkg/common"
)

// BodySizeLimit 拒絕宣告長度超過 maxSize 的請求；
// 未宣告長度的請求在讀取超過 maxSize 時由 MaxBytesReader 回報錯誤
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if declared := c.Request.ContentLength; declared > maxSize {
			common.LogWarn("請求體過大",
				zap.Int64("declared", declared),
				zap.Int64("limit", maxSize),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
				Error: "請求體過大",
				Code:  "REQUEST_TOO_LARGE",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
