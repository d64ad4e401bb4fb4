package store

import (
	"context"
	"errors"
	"time"

	"shipment-tracking-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	shipmentCollection = "shipments"
	adminCollection    = "admins"
)

// MongoShipmentStore là implementation MongoDB của ShipmentStore.
type MongoShipmentStore struct {
	DB *mongo.Database
}

func NewMongoShipmentStore(db *mongo.Database) *MongoShipmentStore {
	return &MongoShipmentStore{DB: db}
}

func (s *MongoShipmentStore) collection() *mongo.Collection {
	return s.DB.Collection(shipmentCollection)
}

func (s *MongoShipmentStore) Create(ctx context.Context, shipment models.Shipment) (models.Shipment, error) {
	shipment = applyDefaults(shipment)

	result, err := s.collection().InsertOne(ctx, shipment)
	if err != nil {
		// Unique index trên trackingId báo trùng lặp.
		if mongo.IsDuplicateKeyError(err) {
			return models.Shipment{}, ErrDuplicate
		}
		return models.Shipment{}, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		shipment.ID = oid
	}
	return shipment, nil
}

func (s *MongoShipmentStore) UpdateByTrackingID(ctx context.Context, trackingID string, patch models.ShipmentPatch) (models.Shipment, error) {
	set := bson.M{}
	if patch.CustomerName != nil {
		set["customerName"] = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		set["customerPhone"] = *patch.CustomerPhone
	}
	if patch.CurrentLocation != nil {
		set["currentLocation"] = *patch.CurrentLocation
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.EstimatedDelivery != nil {
		set["estimatedDelivery"] = *patch.EstimatedDelivery
	}

	if len(set) == 0 {
		// Patch rỗng: trả về bản ghi hiện tại, không ghi gì cả.
		return s.GetByTrackingID(ctx, trackingID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Shipment
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"trackingId": trackingID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Shipment{}, ErrNotFound
		}
		return models.Shipment{}, err
	}
	return updated, nil
}

func (s *MongoShipmentStore) GetByTrackingID(ctx context.Context, trackingID string) (models.Shipment, error) {
	var shipment models.Shipment
	err := s.collection().FindOne(ctx, bson.M{"trackingId": trackingID}).Decode(&shipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Shipment{}, ErrNotFound
		}
		return models.Shipment{}, err
	}
	return shipment, nil
}

func (s *MongoShipmentStore) GetByPhone(ctx context.Context, phone string) ([]models.Shipment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection().Find(ctx, bson.M{"customerPhone": phone}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shipments []models.Shipment
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	if len(shipments) == 0 {
		// Chính sách có chủ đích: không có kết quả là lỗi NotFound,
		// không phải danh sách rỗng thành công.
		return nil, ErrNotFound
	}
	return shipments, nil
}

func (s *MongoShipmentStore) GetByTrackingIDAndPhone(ctx context.Context, trackingID, phone string) (models.Shipment, error) {
	var shipment models.Shipment
	filter := bson.M{"trackingId": trackingID, "customerPhone": phone}
	err := s.collection().FindOne(ctx, filter).Decode(&shipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Shipment{}, ErrNotFound
		}
		return models.Shipment{}, err
	}
	return shipment, nil
}

func (s *MongoShipmentStore) Recent(ctx context.Context, since time.Time, limit int64) ([]models.Shipment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.collection().Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shipments := []models.Shipment{}
	if err := cursor.All(ctx, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// MongoAdminStore là implementation MongoDB của AdminStore.
type MongoAdminStore struct {
	DB *mongo.Database
}

func NewMongoAdminStore(db *mongo.Database) *MongoAdminStore {
	return &MongoAdminStore{DB: db}
}

func (s *MongoAdminStore) collection() *mongo.Collection {
	return s.DB.Collection(adminCollection)
}

func (s *MongoAdminStore) Create(ctx context.Context, admin models.Admin) (models.Admin, error) {
	// Kiểm tra xem email đã tồn tại chưa trước khi chèn.
	count, err := s.collection().CountDocuments(ctx, bson.M{"email": admin.Email})
	if err != nil {
		return models.Admin{}, err
	}
	if count > 0 {
		return models.Admin{}, ErrDuplicate
	}

	result, err := s.collection().InsertOne(ctx, admin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Admin{}, ErrDuplicate
		}
		return models.Admin{}, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		admin.ID = oid
	}
	return admin, nil
}

func (s *MongoAdminStore) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := s.collection().FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Admin{}, ErrNotFound
		}
		return models.Admin{}, err
	}
	return admin, nil
}
