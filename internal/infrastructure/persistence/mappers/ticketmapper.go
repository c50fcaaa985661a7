package mappers

import (
	"fmt"
	"strconv"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-ai/helpdesk/internal/shared/mapper"
)

type TicketMapper interface {
	ToEntity(model *models.TicketModel) (*ticket.Ticket, error)
	ToModel(entity *ticket.Ticket) (*models.TicketModel, error)
	ToSummary(model *models.TicketModel) (*ticket.Summary, error)
	ToSummaries(models []*models.TicketModel) ([]*ticket.Summary, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToEntity(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := ticket.ReconstructTicket(
		model.ID,
		model.Subject,
		model.Body,
		model.TicketType,
		model.Priority,
		model.Resolution,
		vo.ResolutionStatus(model.ResolutionStatus),
		model.AdminSolution,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket entity: %w", err)
	}

	return entity, nil
}

func (m *TicketMapperImpl) ToModel(entity *ticket.Ticket) (*models.TicketModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.TicketModel{
		ID:               entity.ID(),
		Subject:          entity.Subject(),
		Body:             entity.Body(),
		TicketType:       entity.TicketType(),
		Priority:         entity.Priority(),
		Resolution:       entity.Resolution(),
		ResolutionStatus: entity.ResolutionStatus().String(),
		AdminSolution:    entity.AdminSolution(),
		CreatedAt:        entity.CreatedAt(),
	}, nil
}

func (m *TicketMapperImpl) ToSummary(model *models.TicketModel) (*ticket.Summary, error) {
	entity, err := m.ToEntity(model)
	if err != nil || entity == nil {
		return nil, err
	}

	return &ticket.Summary{
		ID:               strconv.FormatUint(uint64(entity.ID()), 10),
		Source:           vo.SourceText,
		Subject:          entity.Subject(),
		Body:             entity.Body(),
		TicketType:       entity.TicketType(),
		Priority:         entity.Priority(),
		Resolution:       entity.Resolution(),
		ResolutionStatus: entity.ResolutionStatus(),
		AdminSolution:    entity.AdminSolution(),
		CreatedAt:        entity.CreatedAt(),
	}, nil
}

func (m *TicketMapperImpl) ToSummaries(modelList []*models.TicketModel) ([]*ticket.Summary, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToSummary, func(model *models.TicketModel) uint { return model.ID })
}
