package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái hợp lệ của một lô hàng.
const (
	StatusPending        = "Pending"
	StatusDispatched     = "Dispatched"
	StatusInTransit      = "In Transit"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusFailed         = "Failed"
	StatusReturned       = "Returned"
)

// DefaultLocation là vị trí ban đầu khi tạo lô hàng mà không chỉ định vị trí.
const DefaultLocation = "Warehouse"

// StatusOptions liệt kê các trạng thái theo thứ tự hiển thị trên dashboard.
var StatusOptions = []string{
	StatusPending,
	StatusDispatched,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusFailed,
	StatusReturned,
}

// ValidStatus kiểm tra một chuỗi có phải là trạng thái hợp lệ hay không.
func ValidStatus(s string) bool {
	for _, o := range StatusOptions {
		if o == s {
			return true
		}
	}
	return false
}

// Shipment là document trong collection "shipments".
// TrackingID là mã định danh duy nhất do admin đặt, không đổi sau khi tạo.
type Shipment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TrackingID        string             `bson:"trackingId" json:"trackingId"`
	CustomerName      string             `bson:"customerName" json:"customerName"`
	CustomerPhone     string             `bson:"customerPhone" json:"customerPhone"` // luôn lưu ở dạng chỉ chứa chữ số
	CurrentLocation   string             `bson:"currentLocation" json:"currentLocation"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	EstimatedDelivery *time.Time         `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
}

// RowID trả về khóa định danh cho một dòng trên dashboard:
// ưu tiên _id của database, nếu không có thì dùng trackingId.
func (s Shipment) RowID() string {
	if !s.ID.IsZero() {
		return s.ID.Hex()
	}
	return s.TrackingID
}

// PublicShipment là projection an toàn trả về cho tra cứu công khai
// (không kèm _id nội bộ).
type PublicShipment struct {
	TrackingID        string     `json:"trackingId"`
	CustomerName      string     `json:"customerName"`
	CustomerPhone     string     `json:"customerPhone"`
	CurrentLocation   string     `json:"currentLocation"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// Public chuyển một Shipment sang projection công khai.
func (s Shipment) Public() PublicShipment {
	return PublicShipment{
		TrackingID:        s.TrackingID,
		CustomerName:      s.CustomerName,
		CustomerPhone:     s.CustomerPhone,
		CurrentLocation:   s.CurrentLocation,
		Status:            s.Status,
		CreatedAt:         s.CreatedAt,
		EstimatedDelivery: s.EstimatedDelivery,
	}
}

// NormalizePhone loại bỏ mọi ký tự không phải chữ số.
// Số điện thoại luôn được chuẩn hóa trước khi ghi vào database.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ShipmentPatch mô tả một cập nhật từng phần: chỉ các field khác nil được ghi.
type ShipmentPatch struct {
	CustomerName      *string    `json:"customerName,omitempty"`
	CustomerPhone     *string    `json:"customerPhone,omitempty"`
	CurrentLocation   *string    `json:"currentLocation,omitempty"`
	Status            *string    `json:"status,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// IsEmpty báo patch không chứa thay đổi nào.
func (p ShipmentPatch) IsEmpty() bool {
	return p.CustomerName == nil &&
		p.CustomerPhone == nil &&
		p.CurrentLocation == nil &&
		p.Status == nil &&
		p.EstimatedDelivery == nil
}
