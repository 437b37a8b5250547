package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readinessTimeout 就緒檢查等待依賴的最長時間
const readinessTimeout = 3 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     *CacheStatus           `json:"cache,omitempty"`
}

// CacheStatus 快取狀態
type CacheStatus struct {
	Enabled bool                   `json:"enabled"`
	Backend string                 `json:"backend"`
	Stats   map[string]interface{} `json:"stats,omitempty"`
}

// StatsReporter 可回報統計資料的快取
type StatsReporter interface {
	GetStats() map[string]interface{}
}

// Probe 檢查外部依賴是否可用
type Probe func(ctx context.Context) error

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	value, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
			"code":  common.ErrCodeInternalError,
		})
		return
	}
	cfg, ok := value.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Cache: &CacheStatus{
			Enabled: cfg.Cache.Enabled,
			Backend: cfg.Cache.Backend,
		},
	}

	if store, exists := c.Get("cache_store"); exists {
		if reporter, ok := store.(StatsReporter); ok {
			response.Cache.Stats = reporter.GetStats()
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，依序執行各項依賴檢查
func ReadinessCheck(probes map[string]Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		checks := make(map[string]string, len(probes))
		ready := true
		for name, probe := range probes {
			if err := probe(ctx); err != nil {
				common.LogWarn("Readiness probe failed",
					zap.String("probe", name),
					zap.Error(err),
				)
				checks[name] = err.Error()
				ready = false
				continue
			}
			checks[name] = "ok"
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"checks": checks,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"checks": checks,
		})
	}
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
