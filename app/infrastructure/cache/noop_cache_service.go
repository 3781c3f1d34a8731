package cache

import (
	"context"
	"fmt"
	"time"
)

// NoOpCacheService disables caching; every read misses and every write is
// dropped. Useful when bisecting stale-content reports.
type NoOpCacheService struct{}

func (n *NoOpCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return nil
}

func (n *NoOpCacheService) Get(ctx context.Context, key string, dest any) error {
	return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

func (n *NoOpCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

func (n *NoOpCacheService) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (n *NoOpCacheService) FlushAll(ctx context.Context) error {
	return nil
}

func (n *NoOpCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (n *NoOpCacheService) Close() error {
	return nil
}

func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}
