package billing

import (
	"context"
	"time"

	"go-spear/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BillingRepository interface {
	// MarkProcessed records the event id and reports whether it was new.
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
	ListRecent(ctx context.Context, limit int64) ([]ProcessedEvent, error)
}

type BillingRepositoryImpl struct {
	collection *mongo.Collection
}

func NewBillingRepository(db *database.MongodbDB) BillingRepository {
	return &BillingRepositoryImpl{
		collection: db.DB.Collection("billing_events"),
	}
}

func (r *BillingRepositoryImpl) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	_, err := r.collection.InsertOne(ctx, ProcessedEvent{
		ID:          eventID,
		Type:        eventType,
		ProcessedAt: time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *BillingRepositoryImpl) ListRecent(ctx context.Context, limit int64) ([]ProcessedEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "processed_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []ProcessedEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
