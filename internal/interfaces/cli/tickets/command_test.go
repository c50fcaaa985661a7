package tickets

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
)

func TestPrintListing(t *testing.T) {
	color.NoColor = true

	list := &dto.TicketListDTO{
		TextTickets: []*dto.TicketListItemDTO{
			{ID: "1", Source: "text", Subject: "VPN down", TicketType: "Incident", Priority: "high", ResolutionStatus: "generated", CreatedAt: "2024-05-01T10:00:00Z"},
		},
		OcrTickets: []*dto.TicketListItemDTO{
			{ID: "abc", Source: "image", Subject: "Login error", TicketType: "Request", Priority: "low", ResolutionStatus: "failed", CreatedAt: "2024-05-01T09:00:00Z"},
		},
		Total:     2,
		TextTotal: 10,
		OcrTotal:  3,
		Page:      1,
		PageSize:  20,
	}

	var buf bytes.Buffer
	PrintListing(&buf, list)
	out := buf.String()

	assert.Contains(t, out, "[text]")
	assert.Contains(t, out, "VPN down")
	assert.Contains(t, out, "[image]")
	assert.Contains(t, out, "Login error")
	assert.Contains(t, out, "resolution failed")
	assert.NotContains(t, out, "resolution generated")
	assert.Contains(t, out, "page 1, 2 tickets (text 10, image 3 stored)")
}
