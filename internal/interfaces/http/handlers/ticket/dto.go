package ticket

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/usecases"
	ticketdomain "github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/utils"
)

type SubmitTicketRequest struct {
	Subject       string  `json:"subject" validate:"required"`
	Body          string  `json:"body" validate:"required"`
	AdminSolution *string `json:"admin_solution,omitempty"`
}

func (r *SubmitTicketRequest) ToCommand() usecases.SubmitTicketCommand {
	return usecases.SubmitTicketCommand{
		Subject:       r.Subject,
		Body:          r.Body,
		AdminSolution: optionalText(r.AdminSolution),
	}
}

// SubmitImageTicketRequest holds the text fields of the multipart form.
type SubmitImageTicketRequest struct {
	Subject       string `form:"subject" validate:"required"`
	Body          string `form:"body" validate:"required"`
	AdminSolution string `form:"admin_solution"`
}

func (r *SubmitImageTicketRequest) ToCommand(image ticketdomain.Image) usecases.SubmitImageTicketCommand {
	return usecases.SubmitImageTicketCommand{
		Subject:       r.Subject,
		Body:          r.Body,
		AdminSolution: optionalText(&r.AdminSolution),
		Image:         image,
	}
}

func parseListTicketsQuery(c *gin.Context) usecases.ListTicketsQuery {
	pagination := utils.ParsePagination(c)
	return usecases.ListTicketsQuery{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Source:   strings.TrimSpace(c.Query("source")),
	}
}

// optionalText treats a blank admin solution the same as an absent one.
func optionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
