package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
	vo "github.com/helpdesk-ai/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/helpdesk-ai/helpdesk/internal/infrastructure/persistence/models"
)

var newestFirstSort = bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}

// MongoOcrTicketRepository keeps image-derived tickets, image bytes inline,
// in one Mongo collection.
type MongoOcrTicketRepository struct {
	collection *mongo.Collection
	mapper     mappers.OcrTicketMapper
}

func NewMongoOcrTicketRepository(collection *mongo.Collection) ticket.OcrTicketRepository {
	return &MongoOcrTicketRepository{
		collection: collection,
		mapper:     mappers.NewOcrTicketMapper(),
	}
}

func (r *MongoOcrTicketRepository) Source() vo.Source {
	return vo.SourceImage
}

func (r *MongoOcrTicketRepository) Save(ctx context.Context, t *ticket.OcrTicket) error {
	doc, err := r.mapper.ToDocument(t)
	if err != nil {
		return fmt.Errorf("failed to map ocr ticket entity to document: %w", err)
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert ocr ticket: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}

	if err := t.SetID(oid.Hex()); err != nil {
		return fmt.Errorf("failed to set ocr ticket ID: %w", err)
	}

	return nil
}

func (r *MongoOcrTicketRepository) ListSummaries(ctx context.Context, page ticket.PageRequest) ([]*ticket.Summary, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ocr tickets: %w", err)
	}

	opts := options.Find().
		SetSort(newestFirstSort).
		SetProjection(bson.D{{Key: "image_bytes", Value: 0}})
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
		if page.Offset > 0 {
			opts.SetSkip(int64(page.Offset))
		}
	}

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ocr tickets: %w", err)
	}

	var docs []*models.OcrTicketDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode ocr tickets: %w", err)
	}

	summaries, err := r.mapper.DocumentsToSummaries(docs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map ocr ticket documents to summaries: %w", err)
	}

	return summaries, total, nil
}

func (r *MongoOcrTicketRepository) GetImage(ctx context.Context, id string) (*ticket.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not an ID this store could have issued.
		return nil, ticket.ErrTicketNotFound
	}

	var doc models.OcrTicketDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ocr ticket image: %w", err)
	}

	return &ticket.Image{
		Filename:    doc.ImageFilename,
		ContentType: doc.ImageContentType,
		Data:        doc.ImageBytes,
	}, nil
}
