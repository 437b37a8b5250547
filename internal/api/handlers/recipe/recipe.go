package recipe

import (
	"context"
	"net/http"

	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchRequest 依已選食材搜尋食譜
type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
	Strict      bool     `json:"strict"`
}

// SearchResponse 搜尋結果，依符合比例由高到低
type SearchResponse struct {
	Total   int                          `json:"total"`
	Strict  bool                         `json:"strict"`
	Recipes []recipeService.RecipeResult `json:"recipes"`
}

// Invalidator 可清除快取資料的元件
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Handler 食譜處理程序
type Handler struct {
	recipeService *recipeService.RecipeService
	cache         Invalidator
}

// NewHandler 創建新的食譜處理程序，cache 可為 nil
func NewHandler(recipeService *recipeService.RecipeService, cache Invalidator) *Handler {
	return &Handler{
		recipeService: recipeService,
		cache:         cache,
	}
}

// HandleSearch 依已選食材排序食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := common.RequestID(c)

	common.LogInfo("開始處理食譜搜尋請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, common.ErrInvalidRequest.WithErr(err))
		return
	}
	common.LogDebug("用戶輸入", zap.String("request_id", requestID), zap.Any("req", req))

	results, err := h.recipeService.Search(c.Request.Context(), req.Ingredients, req.Strict)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Total:   len(results),
		Strict:  req.Strict,
		Recipes: results,
	})
}

// HandleInvalidateCache 清除快取的食材目錄與食譜
func (h *Handler) HandleInvalidateCache(c *gin.Context) {
	requestID := common.RequestID(c)

	if h.cache == nil {
		common.AbortWithError(c, common.ErrCacheDisabled)
		return
	}
	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		common.AbortWithError(c, common.ErrServiceUnavailable.WithErr(err))
		return
	}

	common.LogInfo("快取已清除", zap.String("request_id", requestID))
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
