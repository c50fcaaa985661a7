package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-ai/helpdesk/internal/shared/db"
)

// TicketRepositoryImpl keeps typed tickets in the relational store.
type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) ticket.TicketRepository {
	return &TicketRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepositoryImpl) Source() vo.Source {
	return vo.SourceText
}

func (r *TicketRepositoryImpl) Save(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return fmt.Errorf("failed to map ticket entity to model: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set ticket ID: %w", err)
	}
	t.SetCreatedAt(model.CreatedAt)

	return nil
}

func (r *TicketRepositoryImpl) ListSummaries(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.TicketModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var modelList []*models.TicketModel
	err := tx.Select(models.TicketSummaryColumns).
		Scopes(db.NewestFirst("created_at", "id"), db.Paginate(page.Offset, page.Limit)).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	summaries, err := r.mapper.ToSummaries(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map ticket models to summaries: %w", err)
	}

	return summaries, total, nil
}
