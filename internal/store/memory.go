package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"shipment-tracking-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryShipmentStore giữ các lô hàng trong bộ nhớ, dùng cho test và demo.
// Hành vi phải giống hệt MongoShipmentStore.
type MemoryShipmentStore struct {
	mu        sync.RWMutex
	shipments []models.Shipment
}

func NewMemoryShipmentStore() *MemoryShipmentStore {
	return &MemoryShipmentStore{}
}

func (s *MemoryShipmentStore) Create(_ context.Context, shipment models.Shipment) (models.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shipments {
		if existing.TrackingID == shipment.TrackingID {
			return models.Shipment{}, ErrDuplicate
		}
	}

	shipment = applyDefaults(shipment)
	if shipment.ID.IsZero() {
		shipment.ID = primitive.NewObjectID()
	}
	s.shipments = append(s.shipments, shipment)
	return shipment, nil
}

func (s *MemoryShipmentStore) UpdateByTrackingID(_ context.Context, trackingID string, patch models.ShipmentPatch) (models.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.shipments {
		if existing.TrackingID != trackingID {
			continue
		}
		if patch.CustomerName != nil {
			existing.CustomerName = *patch.CustomerName
		}
		if patch.CustomerPhone != nil {
			existing.CustomerPhone = *patch.CustomerPhone
		}
		if patch.CurrentLocation != nil {
			existing.CurrentLocation = *patch.CurrentLocation
		}
		if patch.Status != nil {
			existing.Status = *patch.Status
		}
		if patch.EstimatedDelivery != nil {
			eta := *patch.EstimatedDelivery
			existing.EstimatedDelivery = &eta
		}
		s.shipments[i] = existing
		return existing, nil
	}
	return models.Shipment{}, ErrNotFound
}

func (s *MemoryShipmentStore) GetByTrackingID(_ context.Context, trackingID string) (models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.shipments {
		if existing.TrackingID == trackingID {
			return existing, nil
		}
	}
	return models.Shipment{}, ErrNotFound
}

func (s *MemoryShipmentStore) GetByPhone(_ context.Context, phone string) ([]models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []models.Shipment
	for _, existing := range s.shipments {
		if existing.CustomerPhone == phone {
			matches = append(matches, existing)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	sortNewestFirst(matches)
	return matches, nil
}

func (s *MemoryShipmentStore) GetByTrackingIDAndPhone(_ context.Context, trackingID, phone string) (models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.shipments {
		if existing.TrackingID == trackingID && existing.CustomerPhone == phone {
			return existing, nil
		}
	}
	return models.Shipment{}, ErrNotFound
}

func (s *MemoryShipmentStore) Recent(_ context.Context, since time.Time, limit int64) ([]models.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []models.Shipment{}
	for _, existing := range s.shipments {
		if !existing.CreatedAt.Before(since) {
			matches = append(matches, existing)
		}
	}
	sortNewestFirst(matches)
	// limit <= 0 nghĩa là không giới hạn, giống SetLimit của mongo.
	if limit > 0 && int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func sortNewestFirst(shipments []models.Shipment) {
	sort.SliceStable(shipments, func(i, j int) bool {
		return shipments[i].CreatedAt.After(shipments[j].CreatedAt)
	})
}

// MemoryAdminStore giữ các admin trong bộ nhớ, dùng cho test.
type MemoryAdminStore struct {
	mu     sync.RWMutex
	admins []models.Admin
}

func NewMemoryAdminStore() *MemoryAdminStore {
	return &MemoryAdminStore{}
}

func (s *MemoryAdminStore) Create(_ context.Context, admin models.Admin) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.admins {
		if existing.Email == admin.Email {
			return models.Admin{}, ErrDuplicate
		}
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	s.admins = append(s.admins, admin)
	return admin, nil
}

func (s *MemoryAdminStore) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.admins {
		if existing.Email == email {
			return existing, nil
		}
	}
	return models.Admin{}, ErrNotFound
}
