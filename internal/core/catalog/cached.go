package catalog

import (
	"context"
	"errors"

	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ingredientKeyPrefix = "ingredients:"
	recipeKey           = "recipes"
)

// CachedSource 在資料來源前加上一層快取
// store 為 nil 時直接讀取資料來源
type CachedSource struct {
	source Source
	store  cache.Store
}

// NewCachedSource 創建帶快取的資料來源
func NewCachedSource(source Source, store cache.Store) *CachedSource {
	return &CachedSource{source: source, store: store}
}

// ListIngredients 讀取食材目錄，優先使用快取
func (s *CachedSource) ListIngredients(ctx context.Context, category common.Category) ([]common.IngredientRecord, error) {
	key := ingredientKeyPrefix + string(category)
	if category == "" {
		key = ingredientKeyPrefix + "all"
	}

	var records []common.IngredientRecord
	if s.load(ctx, key, &records) {
		return records, nil
	}

	records, err := s.source.ListIngredients(ctx, category)
	if err != nil {
		return nil, err
	}
	s.save(ctx, key, records)
	return records, nil
}

// ListRecipes 讀取食譜，優先使用快取
func (s *CachedSource) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	if s.load(ctx, recipeKey, &recipes) {
		return recipes, nil
	}

	recipes, err := s.source.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	s.save(ctx, recipeKey, recipes)
	return recipes, nil
}

// Warm 同時預先載入完整食材目錄與食譜
func (s *CachedSource) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.ListIngredients(ctx, "")
		return err
	})
	g.Go(func() error {
		_, err := s.ListRecipes(ctx)
		return err
	})
	return g.Wait()
}

// Invalidate 清除所有快取的資料
func (s *CachedSource) Invalidate(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Invalidate(ctx)
}

func (s *CachedSource) load(ctx context.Context, key string, out interface{}) bool {
	if s.store == nil {
		return false
	}

	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := common.ParseJSON(raw, out); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CachedSource) save(ctx context.Context, key string, value interface{}) {
	if s.store == nil {
		return
	}

	raw, err := common.ToJSON(value)
	if err != nil {
		common.LogWarn("快取內容無法序列化", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("key", key), zap.Error(err))
	}
}
