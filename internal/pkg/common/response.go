package common

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestID 取得請求 ID，沒有時生成一個並寫回響應標頭
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	id := GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}

// AbortWithError 將錯誤轉為 API 錯誤響應 {error, code} 並中止請求
func AbortWithError(c *gin.Context, err error) {
	ce := AsCustomError(err)

	fields := []zap.Field{
		zap.String("code", ce.Code),
		zap.Int("status", ce.Status),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", RequestID(c)),
	}
	if ce.Err != nil {
		fields = append(fields, zap.Error(ce.Err))
	}
	if ce.Status >= 500 {
		LogError(ce.Message, fields...)
	} else {
		LogWarn(ce.Message, fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ErrorResponse{
		Error: ce.Message,
		Code:  ce.Code,
	})
}
