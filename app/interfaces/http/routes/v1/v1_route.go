package v1

import (
	"github.com/gin-gonic/gin"
	"rotation.fm/storefront-gateway/app/interfaces/http/routes/v1/products"
	"rotation.fm/storefront-gateway/app/interfaces/http/routes/v1/webhooks"
)

type V1Route struct {
	productsRoute *products.ProductsRoute
	webhooksRoute *webhooks.WebhooksRoute
}

func NewV1Route(
	productsRoute *products.ProductsRoute,
	webhooksRoute *webhooks.WebhooksRoute,
) *V1Route {
	return &V1Route{
		productsRoute,
		webhooksRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Route.productsRoute.RegisterRouter(v1Router)
	v1Route.webhooksRoute.RegisterRouter(v1Router)
}
