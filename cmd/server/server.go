package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/mileusna/crontab"
	"rotation.fm/storefront-gateway/app/domain/cron"
	"rotation.fm/storefront-gateway/app/interfaces/http"
	"rotation.fm/storefront-gateway/app/utils/httpclients/commerce"
	"rotation.fm/storefront-gateway/app/utils/httpclients/contentstore"
	"rotation.fm/storefront-gateway/config/environment_variables"
)

type Application struct {
	HttpServer  *http.HttpServer
	CronService *cron.CronService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	_ = godotenv.Load()
	environment_variables.EnvironmentVariables.LoadFromEnv()
	contentstore.Init()
	commerce.Init()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	ctab := crontab.New()
	application.CronService.Start(context.Background(), ctab)
	application.Start()
}
