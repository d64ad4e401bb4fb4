package store

import (
	"context"
	"testing"
	"time"

	"shipment-tracking-api-server/internal/models"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestMemoryShipmentStore_CreateAndGet(t *testing.T) {
	s := NewMemoryShipmentStore()
	ctx := context.Background()

	created, err := s.Create(ctx, models.Shipment{
		TrackingID:    "TRK-1",
		CustomerName:  "Alice",
		CustomerPhone: "5551234567",
	})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	require.Equal(t, models.DefaultLocation, created.CurrentLocation)
	require.Equal(t, models.StatusPending, created.Status)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.GetByTrackingID(ctx, "TRK-1")
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = s.GetByTrackingID(ctx, "TRK-404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryShipmentStore_DuplicateTrackingID(t *testing.T) {
	s := NewMemoryShipmentStore()
	ctx := context.Background()

	_, err := s.Create(ctx, models.Shipment{TrackingID: "TRK-1", CustomerName: "A", CustomerPhone: "111111"})
	require.NoError(t, err)

	_, err = s.Create(ctx, models.Shipment{TrackingID: "TRK-1", CustomerName: "B", CustomerPhone: "222222"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryShipmentStore_PatchOnlyTouchesSuppliedFields(t *testing.T) {
	s := NewMemoryShipmentStore()
	ctx := context.Background()

	created, err := s.Create(ctx, models.Shipment{
		TrackingID:    "TRK-1",
		CustomerName:  "Alice",
		CustomerPhone: "5551234567",
	})
	require.NoError(t, err)

	updated, err := s.UpdateByTrackingID(ctx, "TRK-1", models.ShipmentPatch{
		Status: strptr(models.StatusDelivered),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusDelivered, updated.Status)

	// No other field may change.
	require.Equal(t, created.CustomerName, updated.CustomerName)
	require.Equal(t, created.CustomerPhone, updated.CustomerPhone)
	require.Equal(t, created.CurrentLocation, updated.CurrentLocation)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Nil(t, updated.EstimatedDelivery)

	_, err = s.UpdateByTrackingID(ctx, "TRK-404", models.ShipmentPatch{Status: strptr(models.StatusFailed)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryShipmentStore_GetByPhone(t *testing.T) {
	s := NewMemoryShipmentStore()
	ctx := context.Background()
	now := time.Now().UTC()

	for i, trackingID := range []string{"TRK-OLD", "TRK-MID", "TRK-NEW"} {
		_, err := s.Create(ctx, models.Shipment{
			TrackingID:    trackingID,
			CustomerName:  "Alice",
			CustomerPhone: "5551234567",
			CreatedAt:     now.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, models.Shipment{TrackingID: "TRK-OTHER", CustomerName: "Bob", CustomerPhone: "999999"})
	require.NoError(t, err)

	shipments, err := s.GetByPhone(ctx, "5551234567")
	require.NoError(t, err)
	require.Len(t, shipments, 3)
	// Newest first.
	require.Equal(t, "TRK-NEW", shipments[0].TrackingID)
	require.Equal(t, "TRK-OLD", shipments[2].TrackingID)

	// Empty result is an error, not an empty success list.
	_, err = s.GetByPhone(ctx, "0000000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryShipmentStore_GetByTrackingIDAndPhone(t *testing.T) {
	s := NewMemoryShipmentStore()
	ctx := context.Background()

	_, err := s.Create(ctx, models.Shipment{TrackingID: "TRK-1", CustomerName: "A", CustomerPhone: "5551234567"})
	require.NoError(t, err)

	got, err := s.GetByTrackingIDAndPhone(ctx, "TRK-1", "5551234567")
	require.NoError(t, err)
	require.Equal(t, "TRK-1", got.TrackingID)

	// Both fields must match the same record.
	_, err = s.GetByTrackingIDAndPhone(ctx, "TRK-1", "999999")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByTrackingIDAndPhone(ctx, "TRK-2", "5551234567")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryShipmentStore_Recent(t *testing.T) {
	s := NewMemoryShipmentStore()
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.Create(ctx, models.Shipment{TrackingID: "TRK-STALE", CustomerName: "A", CustomerPhone: "1", CreatedAt: now.AddDate(0, 0, -10)})
	require.NoError(t, err)
	_, err = s.Create(ctx, models.Shipment{TrackingID: "TRK-A", CustomerName: "A", CustomerPhone: "1", CreatedAt: now.AddDate(0, 0, -2)})
	require.NoError(t, err)
	_, err = s.Create(ctx, models.Shipment{TrackingID: "TRK-B", CustomerName: "A", CustomerPhone: "1", CreatedAt: now.AddDate(0, 0, -1)})
	require.NoError(t, err)

	since := now.AddDate(0, 0, -5)

	shipments, err := s.Recent(ctx, since, 200)
	require.NoError(t, err)
	require.Len(t, shipments, 2)
	require.Equal(t, "TRK-B", shipments[0].TrackingID)
	require.Equal(t, "TRK-A", shipments[1].TrackingID)

	limited, err := s.Recent(ctx, since, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "TRK-B", limited[0].TrackingID)

	// An empty window is an empty success, unlike GetByPhone.
	empty, err := s.Recent(ctx, now.Add(time.Hour), 200)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestMemoryAdminStore(t *testing.T) {
	s := NewMemoryAdminStore()
	ctx := context.Background()

	created, err := s.Create(ctx, models.Admin{Email: "admin@example.com", Password: "hash"})
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	_, err = s.Create(ctx, models.Admin{Email: "admin@example.com", Password: "other"})
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := s.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}
