package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

const (
	defaultDedupWindow = 1 * time.Second
	// 過期指紋的清理間隔
	dedupSweepInterval = 10 * time.Minute
)

// Deduplicator 記錄最近的請求指紋，用來擋下短時間內重送的相同請求
type Deduplicator struct {
	mu        sync.Mutex
	window    time.Duration
	requests  map[string]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewDeduplicator 創建請求去重器，window <= 0 時使用預設值
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &Deduplicator{
		window:    window,
		requests:  make(map[string]time.Time),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Seen 記錄指紋，並回報同一指紋是否在去重窗口內出現過
func (d *Deduplicator) Seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.lastSweep) > dedupSweepInterval {
		for k, t := range d.requests {
			if now.Sub(t) > 10*d.window {
				delete(d.requests, k)
			}
		}
		d.lastSweep = now
	}

	if last, exists := d.requests[fingerprint]; exists && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Deduplication 請求去重中間件，去重窗口取自 config 的 DedupWindow
func Deduplication(cfg *config.Config) gin.HandlerFunc {
	var window time.Duration
	if cfg != nil {
		window = cfg.DedupWindow
	}
	dedup := NewDeduplicator(window)

	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint := c.ClientIP() + ":" + c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}
			hash := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if dedup.Seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Request too frequent",
				"code":  common.ErrCodeTooManyRequests,
			})
			return
		}

		c.Next()
	}
}
