// Package router assembles the HTTP route tree.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/logger"
	"github.com/shopfront/backend/internal/interfaces/http/handler"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// Options carries everything the router needs
type Options struct {
	Logger       *zap.Logger
	JWTService   *auth.JWTService
	MaxBodyBytes int64
	Tracing      bool
	ServiceName  string

	System  *handler.SystemHandler
	Orders  *handler.OrderHandler
	Billing *handler.BillingHandler
	Catalog *handler.CatalogHandler
	Profile *handler.ProfileHandler
	Admin   *handler.AdminHandler
}

// New builds the gin engine with the full middleware pipeline and
// route tree
func New(opts Options) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(opts.Logger))
	engine.Use(logger.GinRecovery(opts.Logger))
	engine.Use(middleware.CORS())
	engine.Use(middleware.BodyLimit(opts.MaxBodyBytes))
	if opts.Tracing {
		engine.Use(otelgin.Middleware(opts.ServiceName))
	}

	opts.System.RegisterRoutes(engine.Group(""))

	v1 := engine.Group("/api/v1")

	// public storefront surface, no authentication
	public := v1.Group("/public")
	opts.Orders.RegisterPublicRoutes(public)
	opts.Catalog.RegisterPublicRoutes(public)
	opts.Billing.RegisterPublicRoutes(public)

	// authenticated surface
	authed := v1.Group("")
	authed.Use(middleware.Auth(opts.JWTService))
	opts.Orders.RegisterOwnerRoutes(authed)
	opts.Catalog.RegisterOwnerRoutes(authed)
	opts.Billing.RegisterUserRoutes(authed)
	opts.Profile.RegisterRoutes(authed)

	// administrative surface
	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(opts.JWTService), middleware.RequireAdmin())
	opts.Admin.RegisterRoutes(admin)

	return engine
}
