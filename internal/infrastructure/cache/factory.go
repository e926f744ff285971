package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates the idempotency store the checkout config
// asks for. With UseRedis set it requires a reachable Redis and fails
// otherwise; without it a process-local store is returned.
func NewIdempotencyStore(cfg config.CheckoutConfig, redisCfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.UseRedis {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("redis required for checkout idempotency: %w", err)
	}
	logger.Info("using Redis idempotency store",
		zap.String("host", redisCfg.Host),
		zap.Int("port", redisCfg.Port),
	)
	return store, nil
}
