package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/pkg/common"
)

func TestFormatResults_TagsIngredients(t *testing.T) {
	r := newRecipe("9", []string{"土豆", "鸡蛋"}, "葱")
	r.Image = "img.jpg"
	r.Insight = "家常"
	selected := []string{"土豆", "鸡蛋"}

	ranked, err := Rank([]common.Recipe{r}, selected, false)
	require.NoError(t, err)

	results := FormatResults(ranked, selected)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, common.ID("9"), got.ID)
	assert.Equal(t, "img.jpg", got.Image)
	assert.Equal(t, "家常", got.Insight)
	assert.Equal(t, []string{"做菜"}, got.Steps)
	assert.Equal(t, []ResultIngredient{
		{Name: "土豆", Amount: "适量", Status: StatusStocked},
		{Name: "鸡蛋", Amount: "适量", Status: StatusStocked},
	}, got.Ingredients.Main)
	assert.Equal(t, []ResultIngredient{
		{Name: "葱", Amount: "少许", Status: StatusMissing},
	}, got.Ingredients.Condiments)
}

func TestFormatResults_JSONShape(t *testing.T) {
	ranked := []RankedRecipe{{
		Recipe:          common.Recipe{ID: "1", Name: "没有食材"},
		MatchPercentage: 0,
	}}

	data, err := json.Marshal(FormatResults(ranked, []string{"鸡蛋"}))
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"id": "1",
		"name": "没有食材",
		"image": "",
		"insight": "",
		"missingIngredients": [],
		"matchPercentage": 0,
		"ingredients": {"main": [], "condiments": []},
		"steps": []
	}]`, string(data))
}
