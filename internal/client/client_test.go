package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"shipment-tracking-api-server/config"
	"shipment-tracking-api-server/internal/api/routes"
	"shipment-tracking-api-server/internal/client"
	"shipment-tracking-api-server/internal/models"
	"shipment-tracking-api-server/internal/socket"
	"shipment-tracking-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	cfg := config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: "1h"},
	}
	router := routes.SetupRouter(
		store.NewMemoryShipmentStore(),
		store.NewMemoryAdminStore(),
		socket.NewHub(),
		cfg,
		zerolog.Nop(),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.NewMemoryTokenStore())
}

func TestClient_EndToEnd(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	require.NoError(t, c.Register(ctx, "admin@example.com", "secret123"))
	require.NoError(t, c.Login(ctx, "admin@example.com", "secret123"))

	// Điện thoại nhập dạng nào thì lưu cũng chỉ còn chữ số.
	created, err := c.CreateShipment(ctx, client.CreateShipmentInput{
		TrackingID:    "TRK-1",
		CustomerName:  "Alice",
		CustomerPhone: "(555) 123-4567",
	})
	require.NoError(t, err)
	require.Equal(t, "5551234567", created.Shipment.CustomerPhone)
	require.Equal(t, models.StatusPending, created.Shipment.Status)

	got, err := c.GetShipment(ctx, "TRK-1")
	require.NoError(t, err)
	require.Equal(t, "5551234567", got.CustomerPhone)

	// by-phone so khớp nguyên văn, nên tra cứu bằng đúng chuỗi chữ số đã lưu.
	byPhone, err := c.GetShipmentsByPhone(ctx, "5551234567")
	require.NoError(t, err)
	require.Equal(t, 1, byPhone.Count)

	status := models.StatusInTransit
	updated, err := c.UpdateShipment(ctx, "TRK-1", models.ShipmentPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.StatusInTransit, updated.UpdatedShipment.Status)
	require.Equal(t, "Alice", updated.UpdatedShipment.CustomerName)

	recent, err := c.RecentShipments(ctx, 5, 0)
	require.NoError(t, err)
	require.Equal(t, 1, recent.Count)
	require.Equal(t, 5, recent.Days)

	public, err := c.LookupShipment(ctx, "TRK-1", "5551234567")
	require.NoError(t, err)
	require.Equal(t, "TRK-1", public.TrackingID)
}

func TestClient_APIErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.GetShipment(ctx, "TRK-404")
	require.Error(t, err)

	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	require.Equal(t, 404, apiErr.StatusCode)
	require.Equal(t, "Shipment not found", apiErr.Message)
}

func TestClient_AuthRequiredAfterLogout(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "admin@example.com", "secret123"))
	require.NoError(t, c.Login(ctx, "admin@example.com", "secret123"))
	require.NoError(t, c.Logout())

	_, err := c.CreateShipment(ctx, client.CreateShipmentInput{
		TrackingID:    "TRK-1",
		CustomerName:  "Alice",
		CustomerPhone: "5551234567",
	})
	apiErr, ok := err.(*client.APIError)
	require.True(t, ok)
	require.Equal(t, 401, apiErr.StatusCode)
}
