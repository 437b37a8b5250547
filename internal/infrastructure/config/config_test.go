package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Catalog: CatalogConfig{BaseURL: "http://localhost:54321", Timeout: 10 * time.Second},
		Cache: CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = 0 }, "server port is required"},
		{"missing catalog url", func(c *Config) { c.Catalog.BaseURL = "" }, "catalog base url is required"},
		{"bad catalog timeout", func(c *Config) { c.Catalog.Timeout = 0 }, "invalid catalog timeout"},
		{"bad cache size", func(c *Config) { c.Cache.MaxSize = 0 }, "invalid cache max size"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "unsupported cache backend"},
		{"redis without addr", func(c *Config) {
			c.Cache.Backend = "redis"
			c.Cache.Redis.Addr = ""
		}, "redis addr is required"},
		{"redis without key prefix", func(c *Config) {
			c.Cache.Backend = "redis"
			c.Cache.Redis.Addr = "localhost:6379"
			c.Cache.Redis.KeyPrefix = " "
		}, "redis key prefix is required"},
		{"redis with prefix", func(c *Config) {
			c.Cache.Backend = "redis"
			c.Cache.Redis.Addr = "localhost:6379"
			c.Cache.Redis.KeyPrefix = "recipe-finder:"
		}, ""},
		{"cache disabled skips cache checks", func(c *Config) {
			c.Cache.Enabled = false
			c.Cache.MaxSize = 0
			c.Cache.Backend = ""
		}, ""},
		{"bad rate limit", func(c *Config) { c.RateLimit.Requests = 0 }, "invalid rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "http://catalog.test")
	t.Setenv("SUPABASE_KEY", "test-key-123456")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.test", cfg.Catalog.BaseURL)
	assert.Equal(t, "test-key-123456", cfg.Catalog.APIKey)
	assert.Equal(t, "ingredients", cfg.Catalog.IngredientTable)
	assert.Equal(t, "recipes", cfg.Catalog.RecipeTable)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "recipe-finder", cfg.App.Name)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
