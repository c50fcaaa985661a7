package usecases

import (
	"context"
	"strings"

	"github.com/helpdesk-ai/helpdesk/internal/application/ticket/dto"
	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
	"github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

type SubmitTicketCommand struct {
	Subject       string
	Body          string
	AdminSolution *string
}

// SubmitTicketUseCase takes a typed ticket through classification and
// generation and stores it in the relational store.
type SubmitTicketUseCase struct {
	pipeline   *IntakePipeline
	ticketRepo ticket.TicketRepository
	notifier   EscalationNotifier
	logger     logger.Interface
}

func NewSubmitTicketUseCase(
	pipeline *IntakePipeline,
	ticketRepo ticket.TicketRepository,
	notifier EscalationNotifier,
	logger logger.Interface,
) *SubmitTicketUseCase {
	return &SubmitTicketUseCase{
		pipeline:   pipeline,
		ticketRepo: ticketRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *SubmitTicketUseCase) Execute(ctx context.Context, cmd SubmitTicketCommand) (*dto.SubmissionDTO, error) {
	uc.logger.Infow("executing submit ticket use case", "subject_length", len(cmd.Subject), "body_length", len(cmd.Body))

	if err := validateSubjectAndBody(cmd.Subject, cmd.Body); err != nil {
		uc.logger.Errorw("invalid submit ticket command", "error", err)
		return nil, newStageError(StageValidate, err)
	}

	outcome, err := uc.pipeline.Process(ctx, cmd.Subject, cmd.Body)
	if err != nil {
		return nil, err
	}

	storeNull := uc.pipeline.Config().StoreNullOnFailure
	newTicket, err := ticket.NewTicket(
		cmd.Subject,
		cmd.Body,
		outcome.Classification,
		outcome.StoredResolution(storeNull),
		outcome.Resolution.Status(),
		cmd.AdminSolution,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, newStageError(StageValidate, errors.NewValidationError(err.Error()))
	}

	persistCtx, cancel := uc.pipeline.PersistContext(ctx)
	defer cancel()

	if err := uc.ticketRepo.Save(persistCtx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, newStageError(StagePersist, errors.NewStorageError("failed to store ticket"))
	}

	uc.logger.Infow("ticket submitted successfully",
		"ticket_id", newTicket.ID(),
		"ticket_type", newTicket.TicketType(),
		"priority", newTicket.Priority(),
		"resolution_status", newTicket.ResolutionStatus(),
	)

	result := dto.ToTicketSubmissionDTO(newTicket)
	dispatchEscalation(ctx, uc.notifier, uc.logger, result)
	return result, nil
}

func validateSubjectAndBody(subject, body string) *errors.AppError {
	if strings.TrimSpace(subject) == "" {
		return errors.NewValidationError("subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return errors.NewValidationError("body is required")
	}
	return nil
}
