package router

import (
	docs "ems/cmd/docs"
	"ems/config"
	"ems/internal/middleware"
	"ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewHealthRouter,
	NewEmployeeRouter,
)

// NewRouter builds the engine. Middleware order matters: Recovery must wrap Response
// so errors raised there are rendered, and Static runs last so it sees decoded requests.
func NewRouter(
	config *config.Configuration,
	metric *telemetry.Metric,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	decode *middleware.Decode,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	static *middleware.Static,
	healthRouter *HealthRouter,
	employeeRouter *EmployeeRouter,
) (*gin.Engine, error) {
	switch config.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	// client IPs key the rate limit; forwarded headers only count from known proxies
	if err := router.SetTrustedProxies(config.App.TrustedProxies); err != nil {
		return nil, err
	}
	router.Use(traceEntry.Handler())
	router.Use(recovery.ErrorHandler())
	router.Use(cors.CorsHandler())
	router.Use(decode.Handler())
	router.Use(logger.LoggerHandler())
	router.Use(responseMiddleware.FormatHandler())
	router.Use(static.Handler())

	router.GET("/health-check", func(c *gin.Context) {
		response.Status(c, "ok")
		c.Abort()
	})

	router.GET("/metrics", gin.WrapH(metric.Handler()))

	if config.App.SwaggerEnabled {
		// an empty host makes the UI call whichever host served it
		docs.SwaggerInfo.Host = ""
		if config.App.Env == "production" {
			docs.SwaggerInfo.Schemes = []string{"https"}
		}
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	healthRouter.RegisterHealthRoutes(router)
	employeeRouter.RegisterRoutes(router)
	if config.App.Env != "production" {
		pprof.Register(router)
	}
	return router, nil
}
