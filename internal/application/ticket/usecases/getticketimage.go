package usecases

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

type GetTicketImageQuery struct {
	TicketID string
}

type GetTicketImageUseCase struct {
	ocrRepo ticket.OcrTicketRepository
	logger  logger.Interface
}

func NewGetTicketImageUseCase(ocrRepo ticket.OcrTicketRepository, logger logger.Interface) *GetTicketImageUseCase {
	return &GetTicketImageUseCase{
		ocrRepo: ocrRepo,
		logger:  logger,
	}
}

func (uc *GetTicketImageUseCase) Execute(ctx context.Context, query GetTicketImageQuery) (*ticket.Image, error) {
	id := strings.TrimSpace(query.TicketID)
	if id == "" {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	image, err := uc.ocrRepo.GetImage(ctx, id)
	if err != nil {
		if stderrors.Is(err, ticket.ErrTicketNotFound) {
			return nil, errors.NewNotFoundError("ticket not found", id)
		}
		uc.logger.Errorw("failed to load ticket image", "ticket_id", id, "error", err)
		return nil, errors.NewStorageError("failed to load ticket image")
	}

	return image, nil
}
