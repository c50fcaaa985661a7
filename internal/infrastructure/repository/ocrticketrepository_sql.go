package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-ai/helpdesk/internal/shared/db"
)

// SQLOcrTicketRepository is the relational fallback for image-derived
// tickets, used when no document database is deployed.
type SQLOcrTicketRepository struct {
	db     *gorm.DB
	mapper mappers.OcrTicketMapper
}

func NewSQLOcrTicketRepository(db *gorm.DB) ticket.OcrTicketRepository {
	return &SQLOcrTicketRepository{
		db:     db,
		mapper: mappers.NewOcrTicketMapper(),
	}
}

func (r *SQLOcrTicketRepository) Source() vo.Source {
	return vo.SourceImage
}

func (r *SQLOcrTicketRepository) Save(ctx context.Context, t *ticket.OcrTicket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return fmt.Errorf("failed to map ocr ticket entity to model: %w", err)
	}
	model.ID = uuid.NewString()

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ocr ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set ocr ticket ID: %w", err)
	}

	return nil
}

func (r *SQLOcrTicketRepository) ListSummaries(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.OcrTicketModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ocr tickets: %w", err)
	}

	var modelList []*models.OcrTicketModel
	err := tx.Omit("image_bytes").
		Scopes(db.NewestFirst("timestamp", "id"), db.Paginate(page.Offset, page.Limit)).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ocr tickets: %w", err)
	}

	summaries, err := r.mapper.ModelsToSummaries(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map ocr ticket models to summaries: %w", err)
	}

	return summaries, total, nil
}

func (r *SQLOcrTicketRepository) GetImage(ctx context.Context, id string) (*ticket.Image, error) {
	var model models.OcrTicketModel

	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ocr ticket image: %w", err)
	}

	entity, err := r.mapper.FromModel(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map ocr ticket model to entity: %w", err)
	}

	image := entity.Image()
	return &image, nil
}
