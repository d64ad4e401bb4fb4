// server/internal/database/mongo.go
package database

import (
	"context"
	"time"

	"shipment-tracking-api-server/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect mở kết nối tới MongoDB và kiểm tra bằng ping.
func Connect(cfg config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(cfg.Mongo.DBName), nil
}

// EnsureIndexes tạo các index cần thiết nếu chưa có:
// - shipments.trackingId: unique (chặn trùng mã vận đơn ở tầng database)
// - shipments.customerPhone, shipments.createdAt: phục vụ tra cứu
// - admins.email: unique
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	shipmentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trackingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customerPhone", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}
	if _, err := db.Collection("shipments").Indexes().CreateMany(ctx, shipmentIndexes); err != nil {
		return err
	}

	adminIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := db.Collection("admins").Indexes().CreateMany(ctx, adminIndexes)
	return err
}
