package domain

import (
	"github.com/google/wire"
	"rotation.fm/storefront-gateway/app/domain/catalog"
	"rotation.fm/storefront-gateway/app/domain/cron"
)

var ServiceProvider = wire.NewSet(
	catalog.NewEnricher,
	catalog.NewService,
	catalog.NewCachedService,
	cron.NewService,
)
