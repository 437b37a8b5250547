package cache

import (
	"context"
	"errors"
	"fmt"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisService Redis 緩存服務
type RedisService struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisService 創建 Redis 緩存服務
func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線",
		zap.String("addr", cfg.Cache.Redis.Addr),
		zap.Int("db", cfg.Cache.Redis.DB),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &RedisService{client: client, config: &cfg.Cache}, nil
}

// Get 獲取緩存
func (s *RedisService) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			common.LogCacheMiss("redis", key)
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return val, nil
}

// Set 設置緩存
func (s *RedisService) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Invalidate 刪除所有帶本服務前綴的鍵
func (s *RedisService) Invalidate(ctx context.Context) error {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.config.Redis.KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	common.LogInfo("Redis 快取已清空", zap.Int("清理數量", len(keys)))
	return nil
}

// Close 關閉 Redis 連線
func (s *RedisService) Close() error {
	return s.client.Close()
}

// key 加上設定的前綴
func (s *RedisService) key(key string) string {
	return s.config.Redis.KeyPrefix + key
}
