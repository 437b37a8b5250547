package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"recipe-finder/internal/api/handlers/health"
	ingredientHandler "recipe-finder/internal/api/handlers/ingredient"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/ingredient"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// Dependencies 路由需要的外部元件
// Cache 與 Store 為 nil 表示快取關閉；Upstream 為未經快取的資料來源，供就緒檢查使用，
// 為 nil 時改用 Source
type Dependencies struct {
	Source     catalog.Source
	Upstream   catalog.Source
	Cache      recipeHandler.Invalidator
	Store      cache.Store
	Heuristics *ingredient.Heuristics
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Source == nil {
		return nil, errors.New("catalog source is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化服務
	ingredientSvc := recipeService.NewIngredientService(deps.Source, deps.Heuristics)
	recipeSvc := recipeService.NewRecipeService(deps.Source)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("custom_heuristics", deps.Heuristics != nil),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)
		if deps.Store != nil {
			c.Set("cache_store", deps.Store)
		}

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": common.ErrGatewayTimeout.Message,
				"code":  common.ErrCodeGatewayTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
		}
	})

	router.NoRoute(func(c *gin.Context) {
		common.AbortWithError(c, common.ErrNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		common.AbortWithError(c, common.ErrMethodNotAllowed)
	})

	upstream := deps.Upstream
	if upstream == nil {
		upstream = deps.Source
	}

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck(map[string]health.Probe{
		"catalog": func(ctx context.Context) error {
			if _, err := upstream.ListIngredients(ctx, common.CategoryOther); err != nil {
				return fmt.Errorf("catalog unavailable: %w", err)
			}
			return nil
		},
	}))
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	api.Use(middleware.Deduplication(cfg))
	{
		ingredients := ingredientHandler.NewHandler(ingredientSvc)
		ingredientGroup := api.Group("/ingredients")
		{
			// 食材目錄（預設分組）
			ingredientGroup.GET("", ingredients.HandleList)
			// 庫存比對
			ingredientGroup.POST("/availability", ingredients.HandleAvailability)
		}

		recipes := recipeHandler.NewHandler(recipeSvc, deps.Cache)
		api.POST("/recipes/search", recipes.HandleSearch)
		api.POST("/cache/invalidate", recipes.HandleInvalidateCache)
	}

	common.LogInfo("Router setup completed successfully",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
