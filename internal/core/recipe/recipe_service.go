package recipe

import (
	"context"
	"time"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeService 食譜搜尋服務
type RecipeService struct {
	source catalog.Source
}

// NewRecipeService 創建新的食譜搜尋服務
func NewRecipeService(source catalog.Source) *RecipeService {
	return &RecipeService{source: source}
}

// Search 依已選食材排序食譜
// 已選食材會先去除空白；全部為空時返回 common.ErrEmptySelection，不讀取任何食譜
func (s *RecipeService) Search(ctx context.Context, selected []string, strict bool) ([]RecipeResult, error) {
	selected = common.TrimNames(selected)
	if len(selected) == 0 {
		return nil, common.ErrEmptySelection
	}

	start := time.Now()
	recipes, err := s.source.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	ranked, err := Rank(recipes, selected, strict)
	if err != nil {
		return nil, err
	}
	results := FormatResults(ranked, selected)

	common.LogInfo("食譜搜尋完成",
		zap.Int("selected", len(selected)),
		zap.Bool("strict", strict),
		zap.Int("candidates", len(recipes)),
		zap.Int("results", len(results)),
		zap.Duration("耗時", time.Since(start)),
	)
	return results, nil
}
