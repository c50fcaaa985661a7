package ticket

import (
	"time"

	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

// Summary is the read view of a ticket from either store, tagged with the
// store it came from. IDs are only unique within one source.
type Summary struct {
	ID               string
	Source           vo.Source
	Subject          string
	Body             string
	ExtractedText    string
	TicketType       string
	Priority         string
	Resolution       *string
	ResolutionStatus vo.ResolutionStatus
	AdminSolution    *string
	ImageFilename    string
	CreatedAt        time.Time
}

// PageRequest is an offset window applied to one store.
type PageRequest struct {
	Offset int
	Limit  int
}
