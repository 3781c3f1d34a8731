package infrastructure

import (
	"github.com/google/wire"
	"rotation.fm/storefront-gateway/app/domain/catalog"
	"rotation.fm/storefront-gateway/app/infrastructure/cache"
	"rotation.fm/storefront-gateway/app/utils/httpclients/commerce"
	"rotation.fm/storefront-gateway/app/utils/httpclients/contentstore"
)

var InfrastructureProvider = wire.NewSet(
	contentstore.NewClient,
	commerce.NewClient,
	wire.Bind(new(catalog.ContentStore), new(*contentstore.Client)),
	wire.Bind(new(catalog.CommerceStore), new(*commerce.Client)),
	cache.NewCacheService,
)
