package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/helpdesk-ai/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
	// RateLimiter throttles the submit endpoints; nil disables it.
	RateLimiter *middleware.RateLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	api := engine.Group("/api")

	tickets := api.Group("/tickets")
	{
		tickets.POST("/submit",
			append(submitLimit(config, "tickets.submit"), config.TicketHandler.SubmitTicket)...)
		tickets.GET("/all",
			config.TicketHandler.ListTickets)
	}

	ocr := api.Group("/ocr")
	{
		ocr.POST("/submit-image",
			append(submitLimit(config, "ocr.submit"), config.TicketHandler.SubmitImageTicket)...)
		ocr.GET("/tickets/:id/image",
			config.TicketHandler.GetTicketImage)
	}
}

func submitLimit(config *TicketRouteConfig, scope string) []gin.HandlerFunc {
	if config.RateLimiter == nil {
		return nil
	}
	return []gin.HandlerFunc{config.RateLimiter.Limit(scope)}
}
