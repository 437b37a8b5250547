package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/core/ingredient"
	"recipe-finder/internal/pkg/common"
)

type stubSource struct {
	ingredients  []common.IngredientRecord
	recipes      []common.Recipe
	err          error
	recipeCalls  int
	lastCategory common.Category
}

func (s *stubSource) ListIngredients(ctx context.Context, category common.Category) ([]common.IngredientRecord, error) {
	s.lastCategory = category
	return s.ingredients, s.err
}

func (s *stubSource) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	s.recipeCalls++
	return s.recipes, s.err
}

func TestRecipeService_Search(t *testing.T) {
	src := &stubSource{recipes: []common.Recipe{
		newRecipe("1", []string{"土豆", "鸡蛋"}, "葱"),
		newRecipe("2", []string{"土豆"}),
		newRecipe("3", []string{"牛肉"}),
	}}
	svc := NewRecipeService(src)

	results, err := svc.Search(context.Background(), []string{" 土豆 ", "鸡蛋", ""}, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, common.ID("2"), results[0].ID)
	assert.Equal(t, 100, results[0].MatchPercentage)
	assert.Equal(t, common.ID("1"), results[1].ID)
	assert.Equal(t, 67, results[1].MatchPercentage)
	assert.Equal(t, []string{"葱"}, results[1].MissingIngredients)

	strict, err := svc.Search(context.Background(), []string{"土豆"}, true)
	require.NoError(t, err)
	require.Len(t, strict, 1)
	assert.Equal(t, common.ID("2"), strict[0].ID)
}

func TestRecipeService_SearchEmptySelection(t *testing.T) {
	src := &stubSource{}
	svc := NewRecipeService(src)

	_, err := svc.Search(context.Background(), []string{"  ", ""}, false)

	assert.ErrorIs(t, err, common.ErrEmptySelection)
	assert.Equal(t, 0, src.recipeCalls)
}

func TestRecipeService_SearchSourceError(t *testing.T) {
	src := &stubSource{err: common.ErrCatalogUnavailable.WithErr(errors.New("down"))}
	svc := NewRecipeService(src)

	_, err := svc.Search(context.Background(), []string{"土豆"}, false)
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
}

func TestIngredientService_GroupIngredients(t *testing.T) {
	src := &stubSource{ingredients: []common.IngredientRecord{
		{ID: "1", Name: "鸡蛋", Category: common.CategoryOther},
		{ID: "2", Name: "土鸡蛋", Category: common.CategoryOther},
		{ID: "3", Name: "黄瓜", Category: common.CategoryVegetable},
	}}
	svc := NewIngredientService(src, nil)

	groups, err := svc.GroupIngredients(context.Background(), common.CategoryOther)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "鸡蛋", groups[0].Name)
	assert.Len(t, groups[0].Variants, 2)
	assert.Equal(t, common.CategoryOther, src.lastCategory)
}

func TestIngredientService_InvalidCategory(t *testing.T) {
	svc := NewIngredientService(&stubSource{}, nil)

	_, err := svc.ListIngredients(context.Background(), "fruit")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidCategory)
}

func TestIngredientService_CheckAvailability(t *testing.T) {
	svc := NewIngredientService(&stubSource{}, ingredient.DefaultHeuristics())

	got, err := svc.CheckAvailability([]string{"西红柿"}, []string{"番茄", "葱"})
	require.NoError(t, err)
	assert.Equal(t, []ingredient.Availability{
		{Name: "番茄", Available: true},
		{Name: "葱", Available: false},
	}, got)

	_, err = svc.CheckAvailability([]string{"西红柿"}, nil)
	assert.True(t, common.IsValidationError(err))
}
