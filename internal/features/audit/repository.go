package audit

import (
	"context"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditRepository interface {
	Create(ctx context.Context, log *common_models.AuditLog) error
	List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error)
}

type AuditRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAuditRepository(db *database.MongodbDB) AuditRepository {
	return &AuditRepositoryImpl{
		collection: db.DB.Collection("audit_logs"),
	}
}

func (r *AuditRepositoryImpl) Create(ctx context.Context, log *common_models.AuditLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *AuditRepositoryImpl) List(ctx context.Context, filter map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []common_models.AuditLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
