package ingredient

import (
	"net/http"
	"strconv"

	coreIngredient "recipe-finder/internal/core/ingredient"
	recipeService "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListResponse 食材目錄響應
type ListResponse struct {
	Category    string                    `json:"category"`
	Groups      []coreIngredient.Group    `json:"groups"`
	Ingredients []common.IngredientRecord `json:"ingredients"`
}

// AvailabilityRequest 庫存比對請求
type AvailabilityRequest struct {
	Pantry       []string `json:"pantry"`
	Requirements []string `json:"requirements"`
}

// AvailabilityResponse 庫存比對結果，順序與請求相同
type AvailabilityResponse struct {
	Results []coreIngredient.Availability `json:"results"`
}

// Handler 食材處理程序
type Handler struct {
	service *recipeService.IngredientService
}

// NewHandler 創建新的食材處理程序
func NewHandler(service *recipeService.IngredientService) *Handler {
	return &Handler{service: service}
}

// HandleList 讀取食材目錄，預設依名稱分組
func (h *Handler) HandleList(c *gin.Context) {
	requestID := common.RequestID(c)
	category := common.Category(c.Query("category"))

	grouped := true
	if raw := c.Query("grouped"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			common.AbortWithError(c, common.NewValidationError("grouped must be true or false"))
			return
		}
		grouped = v
	}

	common.LogInfo("開始處理食材目錄請求",
		zap.String("request_id", requestID),
		zap.String("category", string(category)),
		zap.Bool("grouped", grouped),
	)

	resp := ListResponse{
		Category:    string(category),
		Groups:      []coreIngredient.Group{},
		Ingredients: []common.IngredientRecord{},
	}
	if grouped {
		groups, err := h.service.GroupIngredients(c.Request.Context(), category)
		if err != nil {
			common.AbortWithError(c, err)
			return
		}
		if groups != nil {
			resp.Groups = groups
		}
	} else {
		records, err := h.service.ListIngredients(c.Request.Context(), category)
		if err != nil {
			common.AbortWithError(c, err)
			return
		}
		if records != nil {
			resp.Ingredients = records
		}
	}

	c.JSON(http.StatusOK, resp)
}

// HandleAvailability 判斷每項所需食材在現有食材中是否找得到
func (h *Handler) HandleAvailability(c *gin.Context) {
	requestID := common.RequestID(c)

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, common.ErrInvalidRequest.WithErr(err))
		return
	}

	results, err := h.service.CheckAvailability(req.Pantry, req.Requirements)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	common.LogInfo("庫存比對完成",
		zap.String("request_id", requestID),
		zap.Int("pantry", len(req.Pantry)),
		zap.Int("requirements", len(req.Requirements)),
	)

	c.JSON(http.StatusOK, AvailabilityResponse{Results: results})
}
