package recipe

import (
	"math"

	"recipe-finder/internal/pkg/common"
)

// IngredientStatus 食材在使用者庫存中的狀態
type IngredientStatus string

const (
	StatusStocked IngredientStatus = "stocked"
	StatusMissing IngredientStatus = "missing"
)

// ResultIngredient 回傳給前端的單項食材
type ResultIngredient struct {
	Name   string           `json:"name"`
	Amount string           `json:"amount"`
	Status IngredientStatus `json:"status"`
}

// ResultIngredients 回傳給前端的食材清單
type ResultIngredients struct {
	Main       []ResultIngredient `json:"main"`
	Condiments []ResultIngredient `json:"condiments"`
}

// RecipeResult 搜尋結果，將排序數值嵌回原本的食譜結構
type RecipeResult struct {
	ID                 common.ID         `json:"id"`
	Name               string            `json:"name"`
	Image              string            `json:"image"`
	Insight            string            `json:"insight"`
	MissingIngredients []string          `json:"missingIngredients"`
	MatchPercentage    int               `json:"matchPercentage"`
	Ingredients        ResultIngredients `json:"ingredients"`
	Steps              []string          `json:"steps"`
}

// FormatResults 將排序結果轉換為 API 回應格式
// 食材狀態與排序採相同規則：名稱完全出現在 selected 中才算 stocked
func FormatResults(ranked []RankedRecipe, selected []string) []RecipeResult {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		selectedSet[name] = struct{}{}
	}

	results := make([]RecipeResult, 0, len(ranked))
	for _, rr := range ranked {
		r := rr.Recipe
		result := RecipeResult{
			ID:                 r.ID,
			Name:               r.Name,
			Image:              r.Image,
			Insight:            r.Insight,
			MissingIngredients: rr.MissingIngredients,
			MatchPercentage:    int(math.Round(rr.MatchPercentage)),
			Ingredients: ResultIngredients{
				Main:       []ResultIngredient{},
				Condiments: []ResultIngredient{},
			},
			Steps: r.Steps,
		}
		if result.MissingIngredients == nil {
			result.MissingIngredients = []string{}
		}
		if result.Steps == nil {
			result.Steps = []string{}
		}
		if r.Ingredients != nil {
			result.Ingredients.Main = tagIngredients(r.Ingredients.Main, selectedSet)
			result.Ingredients.Condiments = tagIngredients(r.Ingredients.Condiments, selectedSet)
		}
		results = append(results, result)
	}
	return results
}

func tagIngredients(reqs []common.RecipeRequirement, selected map[string]struct{}) []ResultIngredient {
	out := make([]ResultIngredient, 0, len(reqs))
	for _, req := range reqs {
		status := StatusMissing
		if _, ok := selected[req.Name]; ok {
			status = StatusStocked
		}
		out = append(out, ResultIngredient{Name: req.Name, Amount: req.Amount, Status: status})
	}
	return out
}
