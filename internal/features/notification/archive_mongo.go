package notification

import (
	"context"
	"time"

	"go-spear/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoArchive struct {
	collection *mongo.Collection
}

func newMongoArchive(db *database.MongodbDB) Archive {
	return &mongoArchive{
		collection: db.DB.Collection("notification_archive"),
	}
}

type archiveDoc struct {
	SessionKey string         `bson:"_id"`
	Audience   Audience       `bson:"audience"`
	Items      []Notification `bson:"items"`
	UpdatedAt  time.Time      `bson:"updated_at"`
}

func (a *mongoArchive) Load(ctx context.Context, sessionKey string) (Audience, []Notification, error) {
	var doc archiveDoc
	err := a.collection.FindOne(ctx, bson.M{"_id": sessionKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return doc.Audience, doc.Items, nil
}

func (a *mongoArchive) Save(ctx context.Context, sessionKey string, audience Audience, items []Notification) error {
	doc := archiveDoc{
		SessionKey: sessionKey,
		Audience:   audience,
		Items:      items,
		UpdatedAt:  time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := a.collection.ReplaceOne(ctx, bson.M{"_id": sessionKey}, doc, opts)
	return err
}

func (a *mongoArchive) Delete(ctx context.Context, sessionKey string) error {
	_, err := a.collection.DeleteOne(ctx, bson.M{"_id": sessionKey})
	return err
}
