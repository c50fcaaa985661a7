package mappers

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
	"github.com/helpdesk-ai/helpdesk/internal/shared/mapper"
)

// OcrTicketMapper converts image-derived tickets to and from both document
// store representations.
type OcrTicketMapper interface {
	ToFields(entity *ticket.OcrTicket) models.OcrTicketFields
	ToDocument(entity *ticket.OcrTicket) (*models.OcrTicketDocument, error)
	FromDocument(doc *models.OcrTicketDocument) (*ticket.OcrTicket, error)
	ToModel(entity *ticket.OcrTicket) (*models.OcrTicketModel, error)
	FromModel(model *models.OcrTicketModel) (*ticket.OcrTicket, error)
	DocumentsToSummaries(docs []*models.OcrTicketDocument) ([]*ticket.Summary, error)
	ModelsToSummaries(modelList []*models.OcrTicketModel) ([]*ticket.Summary, error)
}

type OcrTicketMapperImpl struct{}

func NewOcrTicketMapper() OcrTicketMapper {
	return &OcrTicketMapperImpl{}
}

func (m *OcrTicketMapperImpl) ToFields(entity *ticket.OcrTicket) models.OcrTicketFields {
	return models.OcrTicketFields{
		Subject:          entity.Subject(),
		OriginalBody:     entity.OriginalBody(),
		ExtractedText:    entity.ExtractedText(),
		FullBody:         entity.FullBody(),
		TicketType:       entity.TicketType(),
		Priority:         entity.Priority(),
		Resolution:       entity.Resolution(),
		ResolutionStatus: entity.ResolutionStatus().String(),
		AdminSolution:    entity.AdminSolution(),
		ImageFilename:    entity.Image().Filename,
	}
}

func (m *OcrTicketMapperImpl) ToDocument(entity *ticket.OcrTicket) (*models.OcrTicketDocument, error) {
	if entity == nil {
		return nil, nil
	}

	doc := &models.OcrTicketDocument{
		OcrTicketFields:  m.ToFields(entity),
		ImageContentType: entity.Image().ContentType,
		ImageBytes:       entity.Image().Data,
		Timestamp:        entity.Timestamp(),
	}

	if entity.ID() != "" {
		oid, err := primitive.ObjectIDFromHex(entity.ID())
		if err != nil {
			return nil, fmt.Errorf("invalid ocr ticket ID %q: %w", entity.ID(), err)
		}
		doc.ID = oid
	}

	return doc, nil
}

func (m *OcrTicketMapperImpl) FromDocument(doc *models.OcrTicketDocument) (*ticket.OcrTicket, error) {
	if doc == nil {
		return nil, nil
	}

	return m.reconstruct(doc.ID.Hex(), doc.OcrTicketFields, ticket.Image{
		Filename:    doc.ImageFilename,
		ContentType: doc.ImageContentType,
		Data:        doc.ImageBytes,
	}, doc.Timestamp)
}

func (m *OcrTicketMapperImpl) ToModel(entity *ticket.OcrTicket) (*models.OcrTicketModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OcrTicketModel{
		ID:               entity.ID(),
		Document:         datatypes.NewJSONType(m.ToFields(entity)),
		ImageContentType: entity.Image().ContentType,
		ImageBytes:       entity.Image().Data,
		Timestamp:        entity.Timestamp(),
	}, nil
}

func (m *OcrTicketMapperImpl) FromModel(model *models.OcrTicketModel) (*ticket.OcrTicket, error) {
	if model == nil {
		return nil, nil
	}

	fields := model.Document.Data()
	return m.reconstruct(model.ID, fields, ticket.Image{
		Filename:    fields.ImageFilename,
		ContentType: model.ImageContentType,
		Data:        model.ImageBytes,
	}, model.Timestamp)
}

func (m *OcrTicketMapperImpl) DocumentsToSummaries(docs []*models.OcrTicketDocument) ([]*ticket.Summary, error) {
	return mapper.MapSlicePtrWithID(docs, func(doc *models.OcrTicketDocument) (*ticket.Summary, error) {
		entity, err := m.FromDocument(doc)
		if err != nil {
			return nil, err
		}
		return toOcrSummary(entity), nil
	}, func(doc *models.OcrTicketDocument) string { return doc.ID.Hex() })
}

func (m *OcrTicketMapperImpl) ModelsToSummaries(modelList []*models.OcrTicketModel) ([]*ticket.Summary, error) {
	return mapper.MapSlicePtrWithID(modelList, func(model *models.OcrTicketModel) (*ticket.Summary, error) {
		entity, err := m.FromModel(model)
		if err != nil {
			return nil, err
		}
		return toOcrSummary(entity), nil
	}, func(model *models.OcrTicketModel) string { return model.ID })
}

func (m *OcrTicketMapperImpl) reconstruct(id string, f models.OcrTicketFields, image ticket.Image, timestamp time.Time) (*ticket.OcrTicket, error) {
	entity, err := ticket.ReconstructOcrTicket(
		id,
		f.Subject,
		f.OriginalBody,
		f.ExtractedText,
		f.FullBody,
		f.TicketType,
		f.Priority,
		f.Resolution,
		vo.ResolutionStatus(f.ResolutionStatus),
		f.AdminSolution,
		image,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ocr ticket entity: %w", err)
	}
	return entity, nil
}

// toOcrSummary lists the full body, which is what the classifier and
// generator saw for this ticket.
func toOcrSummary(entity *ticket.OcrTicket) *ticket.Summary {
	return &ticket.Summary{
		ID:               entity.ID(),
		Source:           vo.SourceImage,
		Subject:          entity.Subject(),
		Body:             entity.FullBody(),
		ExtractedText:    entity.ExtractedText(),
		TicketType:       entity.TicketType(),
		Priority:         entity.Priority(),
		Resolution:       entity.Resolution(),
		ResolutionStatus: entity.ResolutionStatus(),
		AdminSolution:    entity.AdminSolution(),
		ImageFilename:    entity.Image().Filename,
		CreatedAt:        entity.Timestamp(),
	}
}
