//go:build wireinject

package main

import (
	"github.com/google/wire"
	"rotation.fm/storefront-gateway/app/domain"
	"rotation.fm/storefront-gateway/app/infrastructure"
	"rotation.fm/storefront-gateway/app/interfaces/http"
	"rotation.fm/storefront-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
