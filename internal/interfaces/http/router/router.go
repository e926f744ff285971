// Package router assembles the gin engine and all API routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a set of routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Dependencies holds everything the router needs to assemble the API
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService

	SystemHandler  *handler.SystemHandler
	ProductHandler *handler.ProductHandler
	OrderHandler   *handler.OrderHandler
	PaymentHandler *handler.PaymentHandler
}

// New builds the gin engine with the full middleware chain and routes.
// The health endpoint and product reads are public; everything else
// sits behind bearer authentication.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies); err != nil {
			deps.Logger.Warn("invalid trusted proxy configuration", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	if len(deps.Config.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	}
	if len(deps.Config.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if deps.Config.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))
	}

	if deps.Config.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	}

	api := engine.Group("/api/v1")

	// Public surface
	deps.SystemHandler.RegisterRoutes(api)
	deps.ProductHandler.RegisterPublicRoutes(api)

	// Authenticated surface
	authed := api.Group("")
	authed.Use(middleware.Auth(deps.JWTService))
	{
		deps.ProductHandler.RegisterRoutes(authed)
		deps.OrderHandler.RegisterRoutes(authed)
		deps.PaymentHandler.RegisterRoutes(authed)
	}

	return engine
}
