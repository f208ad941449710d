package device

import (
	"context"
	"time"

	"go-spear/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DeviceRepository interface {
	Upsert(ctx context.Context, device *Device) error
	FindByDeviceID(ctx context.Context, deviceID string) (*Device, error)
	List(ctx context.Context) ([]Device, error)
}

type DeviceRepositoryImpl struct {
	collection *mongo.Collection
}

func NewDeviceRepository(db *database.MongodbDB) DeviceRepository {
	return &DeviceRepositoryImpl{
		collection: db.DB.Collection("devices"),
	}
}

func (r *DeviceRepositoryImpl) Upsert(ctx context.Context, device *Device) error {
	device.SyncedAt = time.Now()

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"device_id": device.DeviceID},
		bson.M{"$set": bson.M{
			"remote_id":    device.RemoteID,
			"alias":        device.Alias,
			"group_id":     device.GroupID,
			"online_state": device.OnlineState,
			"last_seen_at": device.LastSeenAt,
			"synced_at":    device.SyncedAt,
		}},
		opts,
	)
	return err
}

func (r *DeviceRepositoryImpl) FindByDeviceID(ctx context.Context, deviceID string) (*Device, error) {
	var device Device
	err := r.collection.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&device)
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *DeviceRepositoryImpl) List(ctx context.Context) ([]Device, error) {
	opts := options.Find().SetSort(bson.D{{Key: "alias", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []Device
	if err = cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}
