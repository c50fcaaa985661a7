package http

import (
	"github.com/helpdesk-ai/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/helpdesk-ai/helpdesk/internal/interfaces/http/handlers/ticket"
)

const serviceName = "helpdesk"

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler
	ticketHandler *ticketHandlers.TicketHandler
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(serviceName),
		ticketHandler: ticketHandlers.NewTicketHandler(
			c.ucs.submitTicketUC,
			c.ucs.submitImageTicketUC,
			c.ucs.listTicketsUC,
			c.ucs.getTicketImageUC,
			c.cfg.OCR.MaxImageBytes,
			c.log.Named("http.ticket"),
		),
	}
}
