package store

import (
	"context"
	"errors"
	"time"

	"shipment-tracking-api-server/internal/models"
)

// Lỗi chung cho mọi implementation của store.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ShipmentStore là interface truy cập collection shipments.
// Mọi thao tác ghi là một document write đơn lẻ, không có transaction nào
// trải qua nhiều bản ghi.
type ShipmentStore interface {
	// Create chèn một lô hàng mới. Trả về ErrDuplicate nếu trackingId đã tồn tại.
	// Các field để trống nhận giá trị mặc định: currentLocation = "Warehouse",
	// status = "Pending", createdAt = thời điểm hiện tại.
	Create(ctx context.Context, shipment models.Shipment) (models.Shipment, error)

	// UpdateByTrackingID áp dụng một patch từng phần: chỉ field khác nil thay đổi.
	// Trả về bản ghi sau cập nhật, hoặc ErrNotFound.
	UpdateByTrackingID(ctx context.Context, trackingID string, patch models.ShipmentPatch) (models.Shipment, error)

	// GetByTrackingID tra cứu chính xác theo trackingId.
	GetByTrackingID(ctx context.Context, trackingID string) (models.Shipment, error)

	// GetByPhone trả về mọi lô hàng có số điện thoại (đã chuẩn hóa) trùng khớp,
	// mới tạo trước. Kết quả rỗng được coi là ErrNotFound, không phải
	// danh sách rỗng thành công.
	GetByPhone(ctx context.Context, phone string) ([]models.Shipment, error)

	// GetByTrackingIDAndPhone yêu cầu cả hai field khớp cùng một bản ghi.
	GetByTrackingIDAndPhone(ctx context.Context, trackingID, phone string) (models.Shipment, error)

	// Recent trả về các lô hàng tạo từ thời điểm since trở đi, mới nhất trước,
	// tối đa limit bản ghi.
	Recent(ctx context.Context, since time.Time, limit int64) ([]models.Shipment, error)
}

// AdminStore là interface truy cập collection admins.
type AdminStore interface {
	// Create chèn một admin mới. Trả về ErrDuplicate nếu email đã đăng ký.
	Create(ctx context.Context, admin models.Admin) (models.Admin, error)

	// GetByEmail tra cứu admin theo email. Trả về ErrNotFound nếu không có.
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
}

// applyDefaults điền giá trị mặc định cho một lô hàng trước khi ghi.
func applyDefaults(s models.Shipment) models.Shipment {
	if s.CurrentLocation == "" {
		s.CurrentLocation = models.DefaultLocation
	}
	if s.Status == "" {
		s.Status = models.StatusPending
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return s
}
