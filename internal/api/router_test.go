package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

type stubSource struct {
	ingredients []common.IngredientRecord
	recipes     []common.Recipe
	err         error
}

func (s *stubSource) ListIngredients(ctx context.Context, category common.Category) ([]common.IngredientRecord, error) {
	return s.ingredients, s.err
}

func (s *stubSource) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	return s.recipes, s.err
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{DedupWindow: time.Minute}
	cfg.App.Debug = true
	cfg.App.Version = "test"
	return cfg
}

func newTestRouter(t *testing.T, src *stubSource, deps Dependencies) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps.Source = src
	r, err := SetupRouter(testConfig(), deps)
	require.NoError(t, err)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_RequiresSource(t *testing.T) {
	_, err := SetupRouter(testConfig(), Dependencies{})
	assert.Error(t, err)

	_, err = SetupRouter(nil, Dependencies{Source: &stubSource{}})
	assert.Error(t, err)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	r := newTestRouter(t, &stubSource{}, Dependencies{})

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_ReadyReportsCatalogFailure(t *testing.T) {
	r := newTestRouter(t, &stubSource{err: common.ErrCatalogUnavailable}, Dependencies{})

	w := do(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}

func TestRouter_ReadyChecksUpstreamNotCache(t *testing.T) {
	upstream := &stubSource{err: common.ErrCatalogUnavailable}
	r := newTestRouter(t, &stubSource{}, Dependencies{Upstream: upstream})

	w := do(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	upstream.err = nil
	w = do(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_UnknownRoutes(t *testing.T) {
	r := newTestRouter(t, &stubSource{}, Dependencies{})

	w := do(r, http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"資源不存在","code":"NOT_FOUND"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/recipes/search", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")
}

func TestRouter_EndToEnd(t *testing.T) {
	src := &stubSource{
		ingredients: []common.IngredientRecord{
			{ID: "1", Name: "鸡蛋", Category: common.CategoryOther},
			{ID: "2", Name: "咸鸭蛋", Category: common.CategoryOther},
		},
		recipes: []common.Recipe{{
			ID:   "7",
			Name: "蒸蛋",
			Ingredients: &common.RecipeIngredients{
				Main: []common.RecipeRequirement{{Name: "鸡蛋", Amount: "2个"}},
			},
		}},
	}
	inv := &countingInvalidator{}
	r := newTestRouter(t, src, Dependencies{Cache: inv})

	w := do(r, http.MethodGet, "/api/v1/ingredients", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"groups"`)

	w = do(r, http.MethodPost, "/api/v1/recipes/search", `{"ingredients":["鸡蛋"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"matchPercentage":100`)

	// 相同內容在去重窗口內重送
	w = do(r, http.MethodPost, "/api/v1/recipes/search", `{"ingredients":["鸡蛋"]}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = do(r, http.MethodPost, "/api/v1/recipes/search", `{"ingredients":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")

	w = do(r, http.MethodPost, "/api/v1/cache/invalidate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, inv.calls)
}
