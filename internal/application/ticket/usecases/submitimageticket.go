package usecases

import (
	"context"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

type SubmitImageTicketCommand struct {
	Subject       string
	Body          string
	AdminSolution *string
	Image         ticket.Image
}

// SubmitImageTicketUseCase reads the text out of a screenshot, appends it to
// the typed body, and stores the result in the document store.
type SubmitImageTicketUseCase struct {
	pipeline *IntakePipeline
	ocrRepo  ticket.OcrTicketRepository
	notifier EscalationNotifier
	logger   logger.Interface
}

func NewSubmitImageTicketUseCase(
	pipeline *IntakePipeline,
	ocrRepo ticket.OcrTicketRepository,
	notifier EscalationNotifier,
	logger logger.Interface,
) *SubmitImageTicketUseCase {
	return &SubmitImageTicketUseCase{
		pipeline: pipeline,
		ocrRepo:  ocrRepo,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *SubmitImageTicketUseCase) Execute(ctx context.Context, cmd SubmitImageTicketCommand) (*dto.SubmissionDTO, error) {
	uc.logger.Infow("executing submit image ticket use case",
		"filename", cmd.Image.Filename,
		"image_bytes", len(cmd.Image.Data),
	)

	if err := validateSubjectAndBody(cmd.Subject, cmd.Body); err != nil {
		uc.logger.Errorw("invalid submit image ticket command", "error", err)
		return nil, newStageError(StageValidate, err)
	}
	if len(cmd.Image.Data) == 0 {
		return nil, newStageError(StageValidate, errors.NewValidationError("image is required"))
	}

	extracted, err := uc.pipeline.ExtractText(ctx, cmd.Image.Data)
	if err != nil {
		return nil, err
	}
	if extracted == "" {
		uc.logger.Infow("no text recognized in image", "filename", cmd.Image.Filename)
	}

	fullBody := ticket.ComposeFullBody(cmd.Body, extracted)
	outcome, err := uc.pipeline.Process(ctx, cmd.Subject, fullBody)
	if err != nil {
		return nil, err
	}

	storeNull := uc.pipeline.Config().StoreNullOnFailure
	newTicket, err := ticket.NewOcrTicket(
		cmd.Subject,
		cmd.Body,
		extracted,
		outcome.Classification,
		outcome.StoredResolution(storeNull),
		outcome.Resolution.Status(),
		cmd.AdminSolution,
		cmd.Image,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ocr ticket entity", "error", err)
		return nil, newStageError(StageValidate, errors.NewValidationError(err.Error()))
	}

	persistCtx, cancel := uc.pipeline.PersistContext(ctx)
	defer cancel()

	if err := uc.ocrRepo.Save(persistCtx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ocr ticket", "error", err)
		return nil, newStageError(StagePersist, errors.NewStorageError("failed to store ticket"))
	}

	uc.logger.Infow("image ticket submitted successfully",
		"ticket_id", newTicket.ID(),
		"ticket_type", newTicket.TicketType(),
		"priority", newTicket.Priority(),
		"extracted_length", len(extracted),
		"resolution_status", newTicket.ResolutionStatus(),
	)

	result := dto.ToOcrTicketSubmissionDTO(newTicket)
	dispatchEscalation(ctx, uc.notifier, uc.logger, result)
	return result, nil
}
