package recipe

import (
	"context"
	"fmt"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/ingredient"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientService 食材目錄與庫存比對服務
type IngredientService struct {
	source  catalog.Source
	grouper *ingredient.Grouper
	matcher *ingredient.Matcher
}

// NewIngredientService 創建新的食材服務
func NewIngredientService(source catalog.Source, heuristics *ingredient.Heuristics) *IngredientService {
	if heuristics == nil {
		heuristics = ingredient.DefaultHeuristics()
	}
	return &IngredientService{
		source:  source,
		grouper: ingredient.NewGrouper(heuristics),
		matcher: ingredient.NewMatcher(heuristics.Synonyms),
	}
}

// ListIngredients 讀取食材目錄，category 為空時返回全部
func (s *IngredientService) ListIngredients(ctx context.Context, category common.Category) ([]common.IngredientRecord, error) {
	if category != "" && !category.Valid() {
		return nil, common.ErrInvalidCategory.WithErr(fmt.Errorf("unknown category %q", category))
	}
	return s.source.ListIngredients(ctx, category)
}

// GroupIngredients 讀取食材目錄並分組
func (s *IngredientService) GroupIngredients(ctx context.Context, category common.Category) ([]ingredient.Group, error) {
	records, err := s.ListIngredients(ctx, category)
	if err != nil {
		return nil, err
	}

	groups := s.grouper.Group(records)

	clustered := 0
	for _, g := range groups {
		if g.IsGroup {
			clustered++
		}
	}
	common.LogDebug("Ingredients grouped",
		zap.String("category", string(category)),
		zap.Int("ingredients", len(records)),
		zap.Int("groups", len(groups)),
		zap.Int("clustered_groups", clustered),
	)
	return groups, nil
}

// CheckAvailability 以同義詞與模糊比對判斷每項所需食材是否已有
func (s *IngredientService) CheckAvailability(pantry, requirements []string) ([]ingredient.Availability, error) {
	if len(requirements) == 0 {
		return nil, common.NewValidationError("requirements must not be empty")
	}
	return s.matcher.Check(pantry, requirements), nil
}
