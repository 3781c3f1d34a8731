package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	deltapprof "github.com/grafana/pyroscope-go/godeltaprof/http/pprof"
	"rotation.fm/storefront-gateway/app/infrastructure/cache"
	"rotation.fm/storefront-gateway/app/interfaces/http/middleware"
	v1 "rotation.fm/storefront-gateway/app/interfaces/http/routes/v1"
	"rotation.fm/storefront-gateway/app/utils/logger"
)

type HttpServer struct {
	engine       *gin.Engine
	v1Route      *v1.V1Route
	cacheService cache.CacheService
}

func NewHttpServer(v1Route *v1.V1Route, cacheService cache.CacheService) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:       gin.New(),
		v1Route:      v1Route,
		cacheService: cacheService,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.CORS())

	server.engine.GET("/health-check", func(c *gin.Context) {
		if err := server.cacheService.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "degraded", "cache": err.Error()})
			return
		}
		c.JSON(200, "ok")
	})

	// Delta profiles for continuous profiling collectors.
	debug := server.engine.Group("/debug/pprof")
	debug.GET("/delta_heap", gin.WrapF(deltapprof.Heap))
	debug.GET("/delta_block", gin.WrapF(deltapprof.Block))
	debug.GET("/delta_mutex", gin.WrapF(deltapprof.Mutex))

	return &server
}

func (httpServer *HttpServer) Run() error {
	port := 8080
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
