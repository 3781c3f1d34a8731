package cache

import (
	"strings"

	"rotation.fm/storefront-gateway/config/environment_variables"
)

// NewCacheService creates a cache service based on configuration. The
// gateway defaults to the single-process in-memory backend; Redis is opt-in
// for multi-instance deployments.
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)

	switch cacheType {
	case "redis":
		return NewRedisCacheService()
	case "noop":
		return &NoOpCacheService{}
	case "", "memory":
		return NewMemoryCacheService()
	default:
		return NewMemoryCacheService()
	}
}
