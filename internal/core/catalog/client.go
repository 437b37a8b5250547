package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Source 食材與食譜資料來源
type Source interface {
	ListIngredients(ctx context.Context, category common.Category) ([]common.IngredientRecord, error)
	ListRecipes(ctx context.Context) ([]common.Recipe, error)
}

// 食譜食材的類型
const (
	ingredientTypeMain      = "main"
	ingredientTypeCondiment = "condiment"
)

// Client PostgREST（Supabase）資料庫客戶端
type Client struct {
	config *config.CatalogConfig
	client *resty.Client
}

// recipeRow 食譜資料列，食材透過關聯表展開
type recipeRow struct {
	ID          common.ID             `json:"id"`
	Name        string                `json:"name"`
	Image       string                `json:"image"`
	Insight     string                `json:"insight"`
	Steps       []string              `json:"steps"`
	Ingredients []recipeIngredientRow `json:"recipe_ingredients"`
}

type recipeIngredientRow struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// NewClient 創建資料庫客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Catalog.BaseURL, "/")+"/rest/v1").
		SetTimeout(cfg.Catalog.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.Catalog.APIKey != "" {
		client.
			SetHeader("apikey", cfg.Catalog.APIKey).
			SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Catalog.APIKey))
	}

	return &Client{
		config: &cfg.Catalog,
		client: client,
	}
}

// ListIngredients 讀取食材目錄，category 為空時返回全部
func (c *Client) ListIngredients(ctx context.Context, category common.Category) ([]common.IngredientRecord, error) {
	start := time.Now()

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "id,name,category,icon").
		SetQueryParam("order", "id.asc")
	if category != "" {
		req.SetQueryParam("category", "eq."+string(category))
	}

	var rows []common.IngredientRecord
	err := c.get(req, c.config.IngredientTable, &rows)
	common.LogCatalogFetch(c.config.IngredientTable, len(rows), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	records := make([]common.IngredientRecord, 0, len(rows))
	for _, row := range rows {
		row.Name = strings.TrimSpace(row.Name)
		if row.Name == "" {
			continue
		}
		if !row.Category.Valid() {
			row.Category = common.CategoryOther
		}
		records = append(records, row)
	}
	return records, nil
}

// ListRecipes 讀取全部食譜及其主料與調料
func (c *Client) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	start := time.Now()

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "id,name,image,insight,steps,recipe_ingredients(name,amount,type)").
		SetQueryParam("order", "id.asc")

	var rows []recipeRow
	err := c.get(req, c.config.RecipeTable, &rows)
	common.LogCatalogFetch(c.config.RecipeTable, len(rows), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	recipes := make([]common.Recipe, 0, len(rows))
	for _, row := range rows {
		recipes = append(recipes, row.toRecipe())
	}
	return recipes, nil
}

// get 發送查詢並解析 JSON 陣列
func (c *Client) get(req *resty.Request, table string, out interface{}) error {
	resp, err := req.Get("/" + table)
	if err != nil {
		return common.ErrCatalogUnavailable.WithErr(fmt.Errorf("failed to query %s: %w", table, err))
	}

	if resp.StatusCode() != http.StatusOK {
		return common.ErrCatalogUnavailable.WithErr(fmt.Errorf("catalog returned status %d for %s: %s", resp.StatusCode(), table, resp.String()))
	}

	if err := common.ParseJSONBytes(resp.Body(), out); err != nil {
		return common.ErrCatalogUnavailable.WithErr(fmt.Errorf("failed to parse %s response: %w", table, err))
	}
	return nil
}

// toRecipe 將關聯資料分成主料與調料；沒有關聯資料時保留 nil 由排序端處理
func (row recipeRow) toRecipe() common.Recipe {
	recipe := common.Recipe{
		ID:      row.ID,
		Name:    row.Name,
		Image:   row.Image,
		Insight: row.Insight,
		Steps:   row.Steps,
	}
	if row.Ingredients == nil {
		return recipe
	}

	ingredients := &common.RecipeIngredients{
		Main:       []common.RecipeRequirement{},
		Condiments: []common.RecipeRequirement{},
	}
	for _, ing := range row.Ingredients {
		req := common.RecipeRequirement{Name: strings.TrimSpace(ing.Name), Amount: ing.Amount}
		if req.Name == "" {
			continue
		}
		if ing.Type == ingredientTypeCondiment {
			ingredients.Condiments = append(ingredients.Condiments, req)
		} else {
			ingredients.Main = append(ingredients.Main, req)
		}
	}
	recipe.Ingredients = ingredients
	return recipe
}
