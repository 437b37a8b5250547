package cache

import (
	"context"
	"fmt"

	"recipe-finder/internal/infrastructure/config"
)

// Store 快取後端介面，值一律以字串（JSON）儲存
// Get 未命中時返回 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Invalidate(ctx context.Context) error
	Close() error
}

// NewStore 依設定建立快取後端，快取關閉時返回 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "", "memory":
		return NewManager(cfg), nil
	case "redis":
		svc, err := NewRedisService(cfg)
		if err != nil {
			return nil, err
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
	}
}
