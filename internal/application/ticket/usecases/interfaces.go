package usecases

import (
	"context"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
)

// Classifier predicts the category and priority of a ticket.
type Classifier interface {
	Classify(ctx context.Context, subject, body string) (ticket.Classification, error)
}

// ResolutionGenerator drafts a resolution. Failures are reported through the
// returned value, never as an error.
type ResolutionGenerator interface {
	Generate(ctx context.Context, req ticket.ResolutionRequest) ticket.Resolution
}

// TextExtractor recognizes the text in an uploaded image.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

// EscalationNotifier tells the helpdesk inbox about tickets that need a human.
type EscalationNotifier interface {
	NotifyEscalation(ctx context.Context, notice EscalationNotice) error
}

// HTMLRenderer turns a markdown resolution into sanitized HTML.
type HTMLRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

type SubmitTicketExecutor interface {
	Execute(ctx context.Context, cmd SubmitTicketCommand) (*dto.SubmissionDTO, error)
}

type SubmitImageTicketExecutor interface {
	Execute(ctx context.Context, cmd SubmitImageTicketCommand) (*dto.SubmissionDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error)
}

type GetTicketImageExecutor interface {
	Execute(ctx context.Context, query GetTicketImageQuery) (*ticket.Image, error)
}
