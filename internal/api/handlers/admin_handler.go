// internal/api/handlers/admin_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shipment-tracking-api-server/internal/models"
	"shipment-tracking-api-server/internal/socket"
	"shipment-tracking-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Giới hạn cho recent-shipments.
const (
	defaultRecentDays  = 5
	maxRecentDays      = 30
	defaultRecentLimit = 200
	maxRecentLimit     = 1000
)

// AdminHandler phục vụ các thao tác ghi của admin lên collection shipments.
type AdminHandler struct {
	Shipments store.ShipmentStore
	Hub       *socket.Hub
}

// --- Structs cho Request Body ---

type CreateShipmentRequest struct {
	TrackingID        string     `json:"trackingId" binding:"required"`
	CustomerName      string     `json:"customerName" binding:"required"`
	CustomerPhone     string     `json:"customerPhone" binding:"required"`
	CurrentLocation   string     `json:"currentLocation"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

type UpdateShipmentRequest struct {
	CustomerName      *string    `json:"customerName"`
	CustomerPhone     *string    `json:"customerPhone"`
	CurrentLocation   *string    `json:"currentLocation"`
	Status            *string    `json:"status"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
}

// --- Handlers ---

// CreateShipment chèn một lô hàng mới. Số điện thoại được chuẩn hóa về
// dạng chỉ chứa chữ số trước khi ghi.
func (h *AdminHandler) CreateShipment(c *gin.Context) {
	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Status != "" && !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status: " + req.Status})
		return
	}

	shipment := models.Shipment{
		TrackingID:        req.TrackingID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     models.NormalizePhone(req.CustomerPhone),
		CurrentLocation:   req.CurrentLocation,
		Status:            req.Status,
		EstimatedDelivery: req.EstimatedDelivery,
	}

	created, err := h.Shipments.Create(c.Request.Context(), shipment)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Shipment with this tracking ID already exists"})
			return
		}
		log.Error().Err(err).Str("trackingId", req.TrackingID).Msg("Error creating shipment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create shipment"})
		return
	}

	h.Hub.Broadcast(socket.EventShipmentCreated, created)
	c.JSON(http.StatusCreated, gin.H{"message": "Shipment created successfully", "shipment": created})
}

// UpdateShipment áp dụng một patch từng phần lên lô hàng theo trackingId.
// Field không có trong body được giữ nguyên.
func (h *AdminHandler) UpdateShipment(c *gin.Context) {
	trackingID := c.Param("trackingId")

	var req UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status: " + *req.Status})
		return
	}

	patch := models.ShipmentPatch{
		CustomerName:      req.CustomerName,
		CurrentLocation:   req.CurrentLocation,
		Status:            req.Status,
		EstimatedDelivery: req.EstimatedDelivery,
	}
	if req.CustomerPhone != nil {
		normalized := models.NormalizePhone(*req.CustomerPhone)
		patch.CustomerPhone = &normalized
	}

	updated, err := h.Shipments.UpdateByTrackingID(c.Request.Context(), trackingID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shipment not found"})
			return
		}
		log.Error().Err(err).Str("trackingId", trackingID).Msg("Error updating shipment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update shipment"})
		return
	}

	h.Hub.Broadcast(socket.EventShipmentUpdated, updated)
	c.JSON(http.StatusOK, gin.H{"message": "Shipment updated successfully", "updatedShipment": updated})
}

// RecentShipments trả về các lô hàng tạo trong `days` ngày gần nhất
// (mặc định 5, tối đa 30), mới nhất trước, tối đa `limit` bản ghi.
func (h *AdminHandler) RecentShipments(c *gin.Context) {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days <= 0 {
		days = defaultRecentDays
	}
	if days > maxRecentDays {
		days = maxRecentDays
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	since := time.Now().UTC().AddDate(0, 0, -days)

	shipments, err := h.Shipments.Recent(c.Request.Context(), since, int64(limit))
	if err != nil {
		log.Error().Err(err).Msg("Error fetching recent shipments")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recent shipments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":      days,
		"from":      since.Format(time.RFC3339),
		"count":     len(shipments),
		"shipments": shipments,
	})
}

// Ping xác nhận router admin đã được mount.
func (h *AdminHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "route": "/api/admin/ping"})
}
