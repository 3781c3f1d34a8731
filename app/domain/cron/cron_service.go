package cron

import (
	"context"

	"github.com/mileusna/crontab"
	"rotation.fm/storefront-gateway/app/domain/catalog"
	"rotation.fm/storefront-gateway/app/infrastructure/cache"
	"rotation.fm/storefront-gateway/app/utils/logger"
	"rotation.fm/storefront-gateway/config/environment_variables"
)

// Warm targets mirror the storefront's default front-page queries so the
// first visitor after a TTL expiry never pays the aggregation cost.
const (
	warmFeaturedLimit = 8
	warmNewLimit      = 12
	warmNewMaxWeeks   = 4
)

type CronService struct {
	Catalog *catalog.CachedService
	Cache   cache.CacheService
}

func NewService(catalogService *catalog.CachedService, cacheService cache.CacheService) *CronService {
	return &CronService{
		Catalog: catalogService,
		Cache:   cacheService,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.warmListings(ctx)

	ctab.AddJob("*/5 * * * *", func() {
		cs.warmListings(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

func (cs *CronService) warmListings(ctx context.Context) {
	if cs == nil || cs.Catalog == nil {
		return
	}

	// With a shared Redis cache, one instance warming is enough; the rest
	// skip this cycle instead of hammering the upstreams together.
	if locker, ok := cs.Cache.(cache.Locker); ok {
		mutex := locker.NewMutex(cache.WarmLockKey)
		if err := mutex.Lock(); err != nil {
			return
		}
		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				logger.GetLogger().Warnf("cron service: failed to release warm lock: %v", err)
			}
		}()
	}

	if result := cs.Catalog.FeaturedProducts(ctx, warmFeaturedLimit); result.Degraded {
		logger.GetLogger().Warnf("cron service: featured listing warmed degraded")
	}
	if result := cs.Catalog.NewProductsWithBreakdown(ctx, warmNewLimit, nil, warmNewMaxWeeks); result.Degraded {
		logger.GetLogger().Warnf("cron service: new arrivals warmed degraded")
	}
}
