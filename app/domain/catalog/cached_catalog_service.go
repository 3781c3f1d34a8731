package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rotation.fm/storefront-gateway/app/domain/common"
	"rotation.fm/storefront-gateway/app/domain/product"
	"rotation.fm/storefront-gateway/app/infrastructure/cache"
	"rotation.fm/storefront-gateway/app/utils/logger"
	"rotation.fm/storefront-gateway/config/environment_variables"
)

// TTLs per listing class. Development shortens them so content editors see
// their changes without waiting out production windows.
const (
	listingTTLProd = 5 * time.Minute
	listingTTLDev  = 30 * time.Second
	batchTTLProd   = 30 * time.Minute
	batchTTLDev    = time.Minute
)

// CachedService wraps Service with read-through caching. Degraded results
// pass through uncached so the next request retries the upstreams instead
// of pinning a bad response for a full TTL.
type CachedService struct {
	inner *Service
	cache cache.CacheService
}

func NewCachedService(inner *Service, cacheService cache.CacheService) *CachedService {
	return &CachedService{inner: inner, cache: cacheService}
}

func listingTTL() time.Duration {
	if environment_variables.EnvironmentVariables.IsDevelopment() {
		return listingTTLDev
	}
	return listingTTLProd
}

func batchTTL() time.Duration {
	if environment_variables.EnvironmentVariables.IsDevelopment() {
		return batchTTLDev
	}
	return batchTTLProd
}

// cached runs one read-through cycle: cache hit wins, otherwise compute,
// and store only non-degraded results.
func cached[T any](ctx context.Context, c cache.CacheService, key string, ttl time.Duration, compute func() common.Result[T]) common.Result[T] {
	var value T
	if err := c.Get(ctx, key, &value); err == nil {
		return common.Ok(value)
	}

	result := compute()
	if !result.Degraded {
		if err := c.Set(ctx, key, result.Value, ttl); err != nil {
			logger.GetLogger().Warnf("cache set failed for %s: %v", key, err)
		}
	}
	return result
}

func (s *CachedService) FeaturedProducts(ctx context.Context, limit int) common.Result[[]product.Product] {
	key := fmt.Sprintf(cache.FeaturedProductsKeyPattern, limit)
	return cached(ctx, s.cache, key, listingTTL(), func() common.Result[[]product.Product] {
		return s.inner.FeaturedProducts(ctx, limit)
	})
}

// NewProducts shares the breakdown cache entry and drops the counts.
func (s *CachedService) NewProducts(ctx context.Context, limit int, excludedIDs []string, maxWeeks int) common.Result[[]product.Product] {
	result := s.NewProductsWithBreakdown(ctx, limit, excludedIDs, maxWeeks)
	if result.Degraded {
		return common.Degraded(result.Value.Products)
	}
	return common.Ok(result.Value.Products)
}

// NewProductsWithBreakdown keys on the excluded-id count rather than the ids
// themselves.
func (s *CachedService) NewProductsWithBreakdown(ctx context.Context, limit int, excludedIDs []string, maxWeeks int) common.Result[NewProductsResult] {
	key := fmt.Sprintf(cache.NewProductsKeyPattern, limit, len(excludedIDs), maxWeeks)
	return cached(ctx, s.cache, key, listingTTL(), func() common.Result[NewProductsResult] {
		return s.inner.NewProductsWithBreakdown(ctx, limit, excludedIDs, maxWeeks)
	})
}

func (s *CachedService) ArchiveProducts(ctx context.Context, q ArchiveQuery) common.Result[ArchivePage] {
	key := fmt.Sprintf(cache.ArchiveProductsKeyPattern, q.Facet, q.Value, q.Page, q.PageSize, q.IncludeOutOfStock)
	return cached(ctx, s.cache, key, listingTTL(), func() common.Result[ArchivePage] {
		return s.inner.ArchiveProducts(ctx, q)
	})
}

func (s *CachedService) SearchProducts(ctx context.Context, term string, limit int) common.Result[[]product.Product] {
	key := fmt.Sprintf(cache.SearchProductsKeyPattern, strings.ToLower(strings.TrimSpace(term)), limit)
	return cached(ctx, s.cache, key, listingTTL(), func() common.Result[[]product.Product] {
		return s.inner.SearchProducts(ctx, term, limit)
	})
}

func (s *CachedService) Product(ctx context.Context, slugOrID string) common.Result[*product.Product] {
	key := fmt.Sprintf(cache.ProductKeyPattern, slugOrID)
	var value product.Product
	if err := s.cache.Get(ctx, key, &value); err == nil {
		return common.Ok(&value)
	}

	result := s.inner.Product(ctx, slugOrID)
	// Lookup misses stay uncached: a product published moments later should
	// appear on the next request.
	if !result.Degraded && result.Value != nil {
		if err := s.cache.Set(ctx, key, result.Value, listingTTL()); err != nil {
			logger.GetLogger().Warnf("cache set failed for %s: %v", key, err)
		}
	}
	return result
}

func (s *CachedService) BatchProducts(ctx context.Context, ids []string) common.Result[[]product.Product] {
	key := fmt.Sprintf(cache.BatchProductsKeyPattern, strings.Join(ids, ","))
	return cached(ctx, s.cache, key, batchTTL(), func() common.Result[[]product.Product] {
		return s.inner.BatchProducts(ctx, ids)
	})
}

// InvalidateProductCache clears cached listings after a product update. With
// an id it clears keys containing that id plus the aggregate listing
// families; with an empty id it flushes everything.
func (s *CachedService) InvalidateProductCache(ctx context.Context, productID string) error {
	if productID == "" {
		return s.cache.FlushAll(ctx)
	}
	if err := s.cache.DeletePattern(ctx, "*"+productID+"*"); err != nil {
		return err
	}
	for _, pattern := range cache.InvalidationFamilies() {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}
