package recipe

import (
	"sort"

	"recipe-finder/internal/pkg/common"
)

// RankedRecipe 食譜與已選食材的比對結果，每次排序時重新計算
type RankedRecipe struct {
	Recipe             common.Recipe
	MatchingCount      int
	TotalIngredients   int
	MissingIngredients []string
	MatchPercentage    float64
}

// Rank 依食材覆蓋率排序食譜
// strict 為 true 時只保留缺少 0 項食材的食譜，否則保留至少命中一項的食譜。
// 食材比對採完全相同的字串，不使用同義詞或模糊比對。
func Rank(recipes []common.Recipe, selected []string, strict bool) ([]RankedRecipe, error) {
	if len(selected) == 0 {
		return nil, common.ErrEmptySelection
	}

	selectedSet := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		selectedSet[name] = struct{}{}
	}

	ranked := make([]RankedRecipe, 0, len(recipes))
	for _, r := range recipes {
		scored := score(r, selectedSet)
		if strict {
			if len(scored.MissingIngredients) > 0 {
				continue
			}
		} else if scored.MatchingCount == 0 {
			continue
		}
		ranked = append(ranked, scored)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercentage > ranked[j].MatchPercentage
	})
	return ranked, nil
}

// score 計算單一食譜的命中數、缺少的食材與覆蓋率
func score(r common.Recipe, selected map[string]struct{}) RankedRecipe {
	required := r.RequiredNames()

	matching := 0
	missing := make([]string, 0)
	for _, name := range required {
		if _, ok := selected[name]; ok {
			matching++
		} else {
			missing = append(missing, name)
		}
	}

	percentage := 0.0
	if len(required) > 0 {
		percentage = float64(matching) / float64(len(required)) * 100
	}

	return RankedRecipe{
		Recipe:             r,
		MatchingCount:      matching,
		TotalIngredients:   len(required),
		MissingIngredients: missing,
		MatchPercentage:    percentage,
	}
}
