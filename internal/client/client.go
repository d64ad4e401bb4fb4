// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shipment-tracking-api-server/internal/models"
)

// APIError mang status code và message của server. Message được hiển thị
// nguyên văn cho người dùng.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client gọi HTTP API của shipment tracking server.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
}

// New tạo một Client với TokenStore được inject.
func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// --- Request/Response types, khớp với API surface của server ---

type CreateShipmentInput struct {
	TrackingID        string     `json:"trackingId"`
	CustomerName      string     `json:"customerName"`
	CustomerPhone     string     `json:"customerPhone"`
	CurrentLocation   string     `json:"currentLocation,omitempty"`
	Status            string     `json:"status,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type CreateResponse struct {
	Message  string          `json:"message"`
	Shipment models.Shipment `json:"shipment"`
}

type UpdateResponse struct {
	Message         string          `json:"message"`
	UpdatedShipment models.Shipment `json:"updatedShipment"`
}

type RecentResponse struct {
	Days      int               `json:"days"`
	From      string            `json:"from"`
	Count     int               `json:"count"`
	Shipments []models.Shipment `json:"shipments"`
}

type PhoneLookupResponse struct {
	Count     int               `json:"count"`
	Shipments []models.Shipment `json:"shipments"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// --- Auth ---

// Register tạo tài khoản admin.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil, false)
}

// Login đăng nhập và lưu token vào TokenStore.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, false); err != nil {
		return err
	}
	return c.tokens.SetToken(resp.Token)
}

// Logout xóa token khỏi TokenStore.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// --- Admin operations (yêu cầu bearer token) ---

func (c *Client) CreateShipment(ctx context.Context, input CreateShipmentInput) (CreateResponse, error) {
	var resp CreateResponse
	err := c.do(ctx, http.MethodPost, "/api/admin/create-shipment", input, &resp, true)
	return resp, err
}

func (c *Client) UpdateShipment(ctx context.Context, trackingID string, patch models.ShipmentPatch) (UpdateResponse, error) {
	var resp UpdateResponse
	path := "/api/admin/update-shipment/" + url.PathEscape(trackingID)
	err := c.do(ctx, http.MethodPut, path, patch, &resp, true)
	return resp, err
}

func (c *Client) RecentShipments(ctx context.Context, days, limit int) (RecentResponse, error) {
	var resp RecentResponse
	path := "/api/admin/recent-shipments"
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	err := c.do(ctx, http.MethodGet, path, nil, &resp, true)
	return resp, err
}

// --- Public lookups ---

func (c *Client) GetShipment(ctx context.Context, trackingID string) (models.Shipment, error) {
	var shipment models.Shipment
	path := "/api/shipment/" + url.PathEscape(trackingID)
	err := c.do(ctx, http.MethodGet, path, nil, &shipment, false)
	return shipment, err
}

func (c *Client) GetShipmentsByPhone(ctx context.Context, phone string) (PhoneLookupResponse, error) {
	var resp PhoneLookupResponse
	path := "/api/shipment/by-phone/" + url.PathEscape(phone)
	err := c.do(ctx, http.MethodGet, path, nil, &resp, false)
	return resp, err
}

func (c *Client) LookupShipment(ctx context.Context, trackingID, phone string) (models.PublicShipment, error) {
	var resp models.PublicShipment
	body := map[string]string{"trackingId": trackingID, "phone": phone}
	err := c.do(ctx, http.MethodPost, "/api/shipment/lookup", body, &resp, false)
	return resp, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, false)
}

// do gửi một request JSON và giải mã response vào out (nếu khác nil).
// Response ngoài dải 2xx được chuyển thành *APIError với message của server,
// hoặc một fallback chung nếu body không có message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Request failed"}
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &msg); err == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
