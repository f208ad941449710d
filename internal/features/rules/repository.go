package rules

import (
	"context"
	"time"

	"go-spear/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RuleRepository interface {
	Create(ctx context.Context, rule *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	GetByEvent(ctx context.Context, event string) ([]Rule, error)
	List(ctx context.Context) ([]Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error
	Enable(ctx context.Context, id string, active bool) error
}

type RuleRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRuleRepository(mongodb *database.MongodbDB) RuleRepository {
	return &RuleRepositoryImpl{
		Collection: mongodb.DB.Collection("rules"),
	}
}

func (r *RuleRepositoryImpl) Create(ctx context.Context, rule *Rule) error {
	rule.ID = primitive.NewObjectID()
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, rule)
	return err
}

func (r *RuleRepositoryImpl) GetByID(ctx context.Context, id string) (*Rule, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var rule Rule
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepositoryImpl) GetByEvent(ctx context.Context, event string) ([]Rule, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"event": event})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var rules []Rule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RuleRepositoryImpl) List(ctx context.Context) ([]Rule, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var rules []Rule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RuleRepositoryImpl) Update(ctx context.Context, rule *Rule) error {
	rule.UpdatedAt = time.Now()
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": rule.ID}, bson.M{"$set": rule})
	return err
}

func (r *RuleRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *RuleRepositoryImpl) Enable(ctx context.Context, id string, active bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}})
	return err
}
