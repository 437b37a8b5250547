package recipe

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/pkg/common"
)

func newRecipe(id string, main []string, condiments ...string) common.Recipe {
	ing := &common.RecipeIngredients{}
	for _, name := range main {
		ing.Main = append(ing.Main, common.RecipeRequirement{Name: name, Amount: "适量"})
	}
	for _, name := range condiments {
		ing.Condiments = append(ing.Condiments, common.RecipeRequirement{Name: name, Amount: "少许"})
	}
	return common.Recipe{ID: common.ID(id), Name: "recipe-" + id, Ingredients: ing, Steps: []string{"做菜"}}
}

func ids(ranked []RankedRecipe) []common.ID {
	out := make([]common.ID, len(ranked))
	for i, r := range ranked {
		out[i] = r.Recipe.ID
	}
	return out
}

func TestRank_Scenario(t *testing.T) {
	recipes := []common.Recipe{newRecipe("1", []string{"土豆", "鸡蛋"}, "葱")}

	ranked, err := Rank(recipes, []string{"土豆", "鸡蛋"}, false)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	got := ranked[0]
	assert.Equal(t, 2, got.MatchingCount)
	assert.Equal(t, 3, got.TotalIngredients)
	assert.Equal(t, []string{"葱"}, got.MissingIngredients)
	assert.InDelta(t, 66.67, got.MatchPercentage, 0.01)

	results := FormatResults(ranked, []string{"土豆", "鸡蛋"})
	assert.Equal(t, 67, results[0].MatchPercentage)
}

func TestRank_EmptySelection(t *testing.T) {
	ranked, err := Rank([]common.Recipe{newRecipe("1", []string{"土豆"})}, nil, false)

	assert.Nil(t, ranked)
	assert.True(t, errors.Is(err, common.ErrEmptySelection))
	assert.Equal(t, common.ErrCodeInvalidRequest, common.AsCustomError(err).Code)
}

func TestRank_StrictAndFuzzy(t *testing.T) {
	recipes := []common.Recipe{
		newRecipe("partial", []string{"土豆", "牛肉"}),
		newRecipe("full", []string{"土豆"}, "盐"),
		newRecipe("none", []string{"羊肉"}),
	}
	selected := []string{"土豆", "盐"}

	strict, err := Rank(recipes, selected, true)
	require.NoError(t, err)
	assert.Equal(t, []common.ID{"full"}, ids(strict))
	for _, r := range strict {
		assert.Empty(t, r.MissingIngredients)
	}

	fuzzy, err := Rank(recipes, selected, false)
	require.NoError(t, err)
	assert.Equal(t, []common.ID{"full", "partial"}, ids(fuzzy))
	for _, r := range fuzzy {
		assert.Greater(t, r.MatchingCount, 0)
	}
}

func TestRank_StableTies(t *testing.T) {
	recipes := []common.Recipe{
		newRecipe("a", []string{"鸡蛋", "葱"}),
		newRecipe("b", []string{"鸡蛋", "盐"}),
		newRecipe("c", []string{"鸡蛋"}),
		newRecipe("d", []string{"鸡蛋", "姜"}),
	}

	ranked, err := Rank(recipes, []string{"鸡蛋"}, false)
	require.NoError(t, err)
	assert.Equal(t, []common.ID{"c", "a", "b", "d"}, ids(ranked))
}

func TestRank_ExactMatchOnly(t *testing.T) {
	recipes := []common.Recipe{newRecipe("1", []string{"番茄", "鸡蛋"})}

	ranked, err := Rank(recipes, []string{"西红柿", "鸡蛋"}, false)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, []string{"番茄"}, ranked[0].MissingIngredients)
}

func TestRank_DuplicatesCounted(t *testing.T) {
	recipes := []common.Recipe{newRecipe("1", []string{"鸡蛋", "鸡蛋"}, "盐")}

	ranked, err := Rank(recipes, []string{"鸡蛋"}, false)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 2, ranked[0].MatchingCount)
	assert.Equal(t, 3, ranked[0].TotalIngredients)
}

func TestRank_MalformedRecipes(t *testing.T) {
	recipes := []common.Recipe{
		{ID: "broken", Name: "没有食材"},
		{ID: "empty", Name: "空食材", Ingredients: &common.RecipeIngredients{}},
		newRecipe("ok", []string{"鸡蛋"}),
	}

	fuzzy, err := Rank(recipes, []string{"鸡蛋"}, false)
	require.NoError(t, err)
	assert.Equal(t, []common.ID{"ok"}, ids(fuzzy))

	strict, err := Rank(recipes, []string{"鸡蛋"}, true)
	require.NoError(t, err)
	// 沒有食材的食譜缺少 0 項，仍會出現在嚴格模式，覆蓋率為 0 排在最後
	assert.Equal(t, []common.ID{"ok", "broken", "empty"}, ids(strict))
	for _, r := range strict {
		assert.False(t, math.IsNaN(r.MatchPercentage))
	}
	assert.Equal(t, 0.0, strict[1].MatchPercentage)
	assert.Equal(t, 0, strict[1].TotalIngredients)
}

func TestScore_Monotonic(t *testing.T) {
	recipes := []common.Recipe{
		newRecipe("1", []string{"土豆", "鸡蛋"}, "葱", "盐"),
		newRecipe("2", []string{"番茄", "鸡蛋"}, "糖"),
		newRecipe("3", []string{"牛肉"}, "酱油", "姜"),
	}
	pool := []string{"盐", "鸡蛋", "姜", "番茄", "土豆", "牛肉", "糖", "葱", "酱油"}

	prev := make(map[common.ID]RankedRecipe)
	selected := make(map[string]struct{})
	for _, name := range pool {
		selected[name] = struct{}{}
		for _, r := range recipes {
			cur := score(r, selected)
			if before, ok := prev[r.ID]; ok {
				assert.GreaterOrEqual(t, cur.MatchingCount, before.MatchingCount)
				assert.GreaterOrEqual(t, cur.MatchPercentage, before.MatchPercentage)
			}
			prev[r.ID] = cur
		}
	}
	for _, r := range prev {
		assert.Equal(t, 100.0, r.MatchPercentage)
	}
}
