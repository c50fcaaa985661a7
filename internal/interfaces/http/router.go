package http

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/helpdesk-ai/helpdesk/docs"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/middleware"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log.Named("http")))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	if c.cfg.Server.SwaggerEnabled {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	c.engine.GET("/", c.hdlrs.healthHandler.Root)
	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	routes.SetupTicketRoutes(c.engine, &routes.TicketRouteConfig{
		TicketHandler: c.hdlrs.ticketHandler,
		RateLimiter:   c.rateLimiter,
	})
}
