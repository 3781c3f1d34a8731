package routes

import (
	"github.com/google/wire"
	v1 "rotation.fm/storefront-gateway/app/interfaces/http/routes/v1"
	"rotation.fm/storefront-gateway/app/interfaces/http/routes/v1/products"
	"rotation.fm/storefront-gateway/app/interfaces/http/routes/v1/webhooks"
)

var RouteProvider = wire.NewSet(
	products.NewProductsRoute,
	webhooks.NewWebhooksRoute,
	v1.NewV1Route,
)
