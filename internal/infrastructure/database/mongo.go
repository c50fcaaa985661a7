package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/helpdesk-ai/helpdesk/internal/shared/config"
	appLogger "github.com/helpdesk-ai/helpdesk/internal/shared/logger"
)

// MongoStore is a connected client bound to the ticket collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongo dials the document store, pings it and makes sure the
// listing index exists.
func ConnectMongo(ctx context.Context, cfg *config.DocumentStoreConfig) (*MongoStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	_, err = collection.Indexes().CreateOne(pingCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("timestamp_desc"),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ensure document store index: %w", err)
	}

	appLogger.Info("document store connection established",
		"database", cfg.Database,
		"collection", cfg.Collection)

	return &MongoStore{client: client, collection: collection}, nil
}

func (s *MongoStore) Collection() *mongo.Collection {
	return s.collection
}

// Ping reports whether the document store is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close document store connection: %w", err)
	}
	appLogger.Info("document store connection closed")
	return nil
}
