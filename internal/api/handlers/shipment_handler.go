// internal/api/handlers/shipment_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"shipment-tracking-api-server/internal/models"
	"shipment-tracking-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ShipmentHandler phục vụ các tra cứu công khai, không yêu cầu xác thực.
type ShipmentHandler struct {
	Shipments store.ShipmentStore
}

type LookupRequest struct {
	TrackingID string `json:"trackingId" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// GetShipment tra cứu chính xác theo trackingId.
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	trackingID := c.Param("trackingId")

	shipment, err := h.Shipments.GetByTrackingID(c.Request.Context(), trackingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shipment not found"})
			return
		}
		log.Error().Err(err).Str("trackingId", trackingID).Msg("Error fetching shipment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch shipment"})
		return
	}

	c.JSON(http.StatusOK, shipment)
}

// GetShipmentsByPhone trả về mọi lô hàng gắn với một số điện thoại,
// mới tạo trước. Không có kết quả nào là lỗi 404, không phải danh sách rỗng.
// Param được so khớp nguyên văn với số đã chuẩn hóa trong database; caller
// phải tự chuẩn hóa trước khi gọi (console làm việc này qua ClassifyQuery).
func (h *ShipmentHandler) GetShipmentsByPhone(c *gin.Context) {
	phone := c.Param("phone")

	shipments, err := h.Shipments.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No shipments found for this phone number"})
			return
		}
		log.Error().Err(err).Msg("Error fetching shipments by phone")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch shipments by phone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(shipments), "shipments": shipments})
}

// LookupShipment yêu cầu cả trackingId và số điện thoại khớp cùng một
// bản ghi (chống đoán mò mã vận đơn) và chỉ trả về projection công khai.
func (h *ShipmentHandler) LookupShipment(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "trackingId and phone are required"})
		return
	}

	phone := models.NormalizePhone(req.Phone)
	shipment, err := h.Shipments.GetByTrackingIDAndPhone(c.Request.Context(), req.TrackingID, phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Shipment not found"})
			return
		}
		log.Error().Err(err).Str("trackingId", req.TrackingID).Msg("Error looking up shipment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to look up shipment"})
		return
	}

	c.JSON(http.StatusOK, shipment.Public())
}

// Health trả về trạng thái service, dùng cho probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
