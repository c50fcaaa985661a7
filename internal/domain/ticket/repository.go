package ticket

import (
	"context"

	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
)

// SourceReader lists the tickets of one store, newest first.
type SourceReader interface {
	Source() vo.Source
	ListSummaries(ctx context.Context, page PageRequest) ([]*Summary, int64, error)
}

type TicketRepository interface {
	SourceReader
	// Save inserts t and assigns its ID and creation time.
	Save(ctx context.Context, t *Ticket) error
}

type OcrTicketRepository interface {
	SourceReader
	// Save inserts t, image included, and assigns its ID and timestamp.
	Save(ctx context.Context, t *OcrTicket) error
	// GetImage returns the stored upload or ErrTicketNotFound.
	GetImage(ctx context.Context, id string) (*Image, error)
}
