package rediscache

import (
	"context"

	"go.uber.org/fx"

	"github.com/shipsheet/shipsheet/internal/config"
	"github.com/shipsheet/shipsheet/internal/usecase"
)

// Module wires the Redis-backed profile cache.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Provide(func(c *RedisCache) usecase.ProfileCache { return c }),
	fx.Invoke(registerLifecycle),
)

func newCache(cfg *config.Config) *RedisCache {
	return New(cfg.RedisAddr)
}

func registerLifecycle(lc fx.Lifecycle, cache *RedisCache) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return cache.Close()
		},
	})
}
