package common

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category 食材分類
type Category string

const (
	CategoryVegetable   Category = "vegetable"
	CategoryMeat        Category = "meat"
	CategoryStaple      Category = "staple"
	CategoryCondiment   Category = "condiment"
	CategoryKitchenware Category = "kitchenware"
	CategoryOther       Category = "other"
)

// Categories 所有合法分類，依畫面顯示順序
var Categories = []Category{
	CategoryVegetable,
	CategoryMeat,
	CategoryStaple,
	CategoryCondiment,
	CategoryKitchenware,
	CategoryOther,
}

// Valid 檢查分類是否合法
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ID 資料表主鍵，資料庫可能回傳數字或字串
type ID string

// UnmarshalJSON 同時接受 JSON 字串與數字
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// IngredientRecord 食材目錄中的一筆資料
type IngredientRecord struct {
	ID       ID       `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Icon     string   `json:"icon"`
}

// RecipeRequirement 食譜所需的一項食材
type RecipeRequirement struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// RecipeIngredients 食譜食材，分為主料與調料
type RecipeIngredients struct {
	Main       []RecipeRequirement `json:"main"`
	Condiments []RecipeRequirement `json:"condiments"`
}

// Recipe 食譜
// Ingredients 可能為 nil（資料不完整），排序時視為沒有任何食材
type Recipe struct {
	ID          ID                 `json:"id"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Insight     string             `json:"insight"`
	Ingredients *RecipeIngredients `json:"ingredients"`
	Steps       []string           `json:"steps"`
}

// RequiredNames 依序展開主料與調料名稱，允許重複
func (r *Recipe) RequiredNames() []string {
	if r == nil || r.Ingredients == nil {
		return []string{}
	}
	names := make([]string, 0, len(r.Ingredients.Main)+len(r.Ingredients.Condiments))
	for _, ing := range r.Ingredients.Main {
		names = append(names, ing.Name)
	}
	for _, ing := range r.Ingredients.Condiments {
		names = append(names, ing.Name)
	}
	return names
}
