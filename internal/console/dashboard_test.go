package console

import (
	"context"
	"sync"
	"testing"
	"time"

	"shipment-tracking-api-server/internal/client"
	"shipment-tracking-api-server/internal/models"

	"github.com/stretchr/testify/require"
)

type updateCall struct {
	trackingID string
	patch      models.ShipmentPatch
}

// fakeAPI implements ShipmentAPI for dashboard tests.
type fakeAPI struct {
	mu      sync.Mutex
	rows    []models.Shipment
	updates []updateCall

	updateErr error
	// entered/release gate an in-flight UpdateShipment when non-nil.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAPI) UpdateShipment(_ context.Context, trackingID string, patch models.ShipmentPatch) (client.UpdateResponse, error) {
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{trackingID: trackingID, patch: patch})
	entered, release := f.entered, f.release
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return client.UpdateResponse{}, f.updateErr
	}

	// Echo the patch back like the server does.
	for _, row := range f.rows {
		if row.TrackingID != trackingID {
			continue
		}
		if patch.CustomerName != nil {
			row.CustomerName = *patch.CustomerName
		}
		if patch.CustomerPhone != nil {
			row.CustomerPhone = models.NormalizePhone(*patch.CustomerPhone)
		}
		if patch.CurrentLocation != nil {
			row.CurrentLocation = *patch.CurrentLocation
		}
		if patch.Status != nil {
			row.Status = *patch.Status
		}
		if patch.EstimatedDelivery != nil {
			eta := *patch.EstimatedDelivery
			row.EstimatedDelivery = &eta
		}
		return client.UpdateResponse{Message: "Shipment updated successfully", UpdatedShipment: row}, nil
	}
	return client.UpdateResponse{}, &client.APIError{StatusCode: 404, Message: "Shipment not found"}
}

func (f *fakeAPI) RecentShipments(_ context.Context, days, _ int) (client.RecentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]models.Shipment, len(f.rows))
	copy(rows, f.rows)
	return client.RecentResponse{Days: days, Count: len(rows), Shipments: rows}, nil
}

func (f *fakeAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func shipmentRow(trackingID, status, location string) models.Shipment {
	return models.Shipment{
		TrackingID:      trackingID,
		CustomerName:    "Alice",
		CustomerPhone:   "5551234567",
		CurrentLocation: location,
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}
}

func newTestDashboard(t *testing.T, api *fakeAPI) *Dashboard {
	t.Helper()
	dash := NewDashboard(api)
	require.NoError(t, dash.Refresh(context.Background(), 5))
	return dash
}

func TestDashboard_Refresh_PrunesRowState(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{
		shipmentRow("TRK-1", models.StatusPending, "Warehouse"),
		shipmentRow("TRK-2", models.StatusPending, "Warehouse"),
	}}
	dash := newTestDashboard(t, api)

	dash.SetLocationDraft("TRK-2", "Depot 9")
	require.Equal(t, "Depot 9", dash.LocationDraft("TRK-2"))

	// TRK-2 drops out of the window; its draft goes with it.
	api.mu.Lock()
	api.rows = api.rows[:1]
	api.mu.Unlock()
	require.NoError(t, dash.Refresh(context.Background(), 5))
	require.Equal(t, "", dash.LocationDraft("TRK-2"))
}

func TestDashboard_ChangeStatus_Success(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")}}
	dash := newTestDashboard(t, api)

	err := dash.ChangeStatus(context.Background(), "TRK-1", models.StatusDispatched)
	require.NoError(t, err)

	rows := dash.Rows()
	require.Equal(t, models.StatusDispatched, rows[0].Status)
	msg, errMsg := dash.Messages()
	require.Equal(t, "Shipment updated successfully", msg)
	require.Empty(t, errMsg)
	require.False(t, dash.IsStatusSaving("TRK-1"))

	require.Equal(t, 1, api.updateCount())
	require.Equal(t, models.StatusDispatched, *api.updates[0].patch.Status)
	// Patch carries only the changed field.
	require.Nil(t, api.updates[0].patch.CurrentLocation)
	require.Nil(t, api.updates[0].patch.CustomerName)
}

func TestDashboard_ChangeStatus_RollbackOnFailure(t *testing.T) {
	api := &fakeAPI{
		rows:      []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")},
		updateErr: &client.APIError{StatusCode: 500, Message: "Failed to update shipment"},
	}
	dash := newTestDashboard(t, api)

	err := dash.ChangeStatus(context.Background(), "TRK-1", models.StatusDispatched)
	require.Error(t, err)

	// Displayed status reverted to the captured previous value.
	rows := dash.Rows()
	require.Equal(t, models.StatusPending, rows[0].Status)
	_, errMsg := dash.Messages()
	require.Equal(t, "Failed to update shipment", errMsg)
	require.False(t, dash.IsStatusSaving("TRK-1"))
}

func TestDashboard_ChangeStatus_SuppressesDuplicateInFlight(t *testing.T) {
	api := &fakeAPI{
		rows:    []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")},
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	dash := newTestDashboard(t, api)

	done := make(chan error, 1)
	go func() {
		done <- dash.ChangeStatus(context.Background(), "TRK-1", models.StatusDispatched)
	}()
	<-api.entered
	require.True(t, dash.IsStatusSaving("TRK-1"))

	// Optimistic write is already visible while the request is in flight.
	require.Equal(t, models.StatusDispatched, dash.Rows()[0].Status)

	// A second change on the same row+field is dropped.
	require.NoError(t, dash.ChangeStatus(context.Background(), "TRK-1", models.StatusDelivered))
	require.Equal(t, 1, api.updateCount())

	close(api.release)
	require.NoError(t, <-done)
	require.Equal(t, 1, api.updateCount())
}

func TestDashboard_UpdateLocation_Success(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")}}
	dash := newTestDashboard(t, api)

	dash.SetLocationDraft("TRK-1", "  Hanoi Depot ")
	require.NoError(t, dash.UpdateLocation(context.Background(), "TRK-1"))

	require.Equal(t, "Hanoi Depot", dash.Rows()[0].CurrentLocation)
	require.Equal(t, 1, api.updateCount())
	require.Equal(t, "Hanoi Depot", *api.updates[0].patch.CurrentLocation)
	require.Nil(t, api.updates[0].patch.Status)
}

func TestDashboard_UpdateLocation_NoopWhenUnchanged(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")}}
	dash := newTestDashboard(t, api)

	dash.SetLocationDraft("TRK-1", "Warehouse")
	require.NoError(t, dash.UpdateLocation(context.Background(), "TRK-1"))
	require.Equal(t, 0, api.updateCount())
}

func TestDashboard_UpdateLocation_RollbackOnFailure(t *testing.T) {
	api := &fakeAPI{
		rows:      []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")},
		updateErr: &client.APIError{StatusCode: 500, Message: "Failed to update shipment"},
	}
	dash := newTestDashboard(t, api)

	dash.SetLocationDraft("TRK-1", "Hanoi Depot")
	require.Error(t, dash.UpdateLocation(context.Background(), "TRK-1"))

	require.Equal(t, "Warehouse", dash.Rows()[0].CurrentLocation)
	_, errMsg := dash.Messages()
	require.Equal(t, "Failed to update shipment", errMsg)
	require.False(t, dash.IsLocationSaving("TRK-1"))
}

func TestDashboard_EditFlow_SaveMergesAndExits(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")}}
	dash := newTestDashboard(t, api)

	require.NoError(t, dash.StartEdit("TRK-1"))
	require.Equal(t, "TRK-1", dash.EditingID())

	form := dash.EditForm()
	form.CurrentLocation = "Hanoi Depot"
	form.Status = models.StatusInTransit
	form.EstimatedDelivery = "2026-09-05"
	dash.SetEditForm(form)

	require.NoError(t, dash.SaveEdit(context.Background()))

	require.Equal(t, "", dash.EditingID())
	row := dash.Rows()[0]
	require.Equal(t, "Hanoi Depot", row.CurrentLocation)
	require.Equal(t, models.StatusInTransit, row.Status)
	require.NotNil(t, row.EstimatedDelivery)
	require.Equal(t, "2026-09-05", row.EstimatedDelivery.Format(DateOnly))
}

func TestDashboard_EditFlow_EmptyFieldsOmittedFromPatch(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")}}
	dash := newTestDashboard(t, api)

	require.NoError(t, dash.StartEdit("TRK-1"))
	form := dash.EditForm()
	form.CurrentLocation = "Hanoi Depot"
	form.EstimatedDelivery = "" // unchanged optional field stays out of the patch
	form.Status = ""
	dash.SetEditForm(form)

	require.NoError(t, dash.SaveEdit(context.Background()))

	require.Equal(t, 1, api.updateCount())
	patch := api.updates[0].patch
	require.NotNil(t, patch.CurrentLocation)
	require.Nil(t, patch.Status)
	require.Nil(t, patch.EstimatedDelivery)
}

func TestDashboard_EditFlow_FailureKeepsEditing(t *testing.T) {
	api := &fakeAPI{
		rows:      []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")},
		updateErr: &client.APIError{StatusCode: 500, Message: "Failed to update shipment"},
	}
	dash := newTestDashboard(t, api)

	require.NoError(t, dash.StartEdit("TRK-1"))
	require.Error(t, dash.SaveEdit(context.Background()))

	// Edit mode stays open with the error shown.
	require.Equal(t, "TRK-1", dash.EditingID())
	_, errMsg := dash.Messages()
	require.Equal(t, "Failed to update shipment", errMsg)
	require.False(t, dash.IsEditSaving())
}

func TestDashboard_EditFlow_CancelSendsNothing(t *testing.T) {
	api := &fakeAPI{rows: []models.Shipment{shipmentRow("TRK-1", models.StatusPending, "Warehouse")}}
	dash := newTestDashboard(t, api)

	require.NoError(t, dash.StartEdit("TRK-1"))
	form := dash.EditForm()
	form.CurrentLocation = "Nowhere"
	dash.SetEditForm(form)
	dash.CancelEdit()

	require.Equal(t, "", dash.EditingID())
	require.Equal(t, 0, api.updateCount())
	require.Equal(t, "Warehouse", dash.Rows()[0].CurrentLocation)
}
