package middleware

import (
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger 請求日誌中間件，依響應狀態碼決定日誌級別
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
			// requestid 註冊在本中間件之後，c.Next() 返回後才讀得到
			zap.String("request_id", requestid.Get(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		logAccess(status)("請求完成", fields...)
	}
}

// logAccess 5xx 記為錯誤，4xx 記為警告，其餘為資訊
func logAccess(status int) func(string, ...zap.Field) {
	switch {
	case status >= 500:
		return common.LogError
	case status >= 400:
		return common.LogWarn
	default:
		return common.LogInfo
	}
}

// Recovery 攔截 panic 並返回 INTERNAL_ERROR
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				common.LogError("Panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", requestid.Get(c)),
				)
				c.AbortWithStatusJSON(common.ErrInternalError.Status, common.ErrorResponse{
					Error: common.ErrInternalError.Message,
					Code:  common.ErrCodeInternalError,
				})
			}
		}()

		c.Next()
	}
}
