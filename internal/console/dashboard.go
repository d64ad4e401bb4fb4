// internal/console/dashboard.go
package console

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"shipment-tracking-api-server/internal/client"
	"shipment-tracking-api-server/internal/models"
)

// DateOnly là định dạng ngày của form sửa ETA (không có giờ).
const DateOnly = "2006-01-02"

// ShipmentAPI là phần API mà dashboard cần. client.Client thỏa mãn
// interface này; test dùng fake.
type ShipmentAPI interface {
	UpdateShipment(ctx context.Context, trackingID string, patch models.ShipmentPatch) (client.UpdateResponse, error)
	RecentShipments(ctx context.Context, days, limit int) (client.RecentResponse, error)
}

// EditForm là bản nháp khi một dòng vào chế độ sửa toàn phần.
type EditForm struct {
	TrackingID        string
	CurrentLocation   string
	Status            string
	EstimatedDelivery string // dạng YYYY-MM-DD, rỗng = không gửi
}

// rowState là state tạm cho một dòng đang hiển thị. Tồn tại song song và
// độc lập: cờ đang-lưu-trạng-thái, bản nháp vị trí, cờ đang-lưu-vị-trí.
type rowState struct {
	statusSaving   bool
	locationSaving bool
	locationDraft  *string
}

// Dashboard quản lý bảng "recent shipments" của admin console: cập nhật
// lạc quan theo từng field với hoàn tác khi thất bại, cộng chế độ sửa
// toàn dòng. Mỗi thao tác của người dùng là một request độc lập; cờ
// đang-lưu theo dòng+field chặn request trùng, không chặn các dòng/field
// khác chạy song song.
type Dashboard struct {
	api ShipmentAPI

	mu         sync.Mutex
	rows       []models.Shipment
	state      map[string]*rowState
	days       int
	editingID  string
	editForm   EditForm
	editSaving bool
	msg        string
	err        string
}

func NewDashboard(api ShipmentAPI) *Dashboard {
	return &Dashboard{
		api:   api,
		state: make(map[string]*rowState),
		days:  5,
	}
}

// --- Đọc state ---

// Rows trả về bản sao danh sách dòng đang hiển thị.
func (d *Dashboard) Rows() []models.Shipment {
	d.mu.Lock()
	defer d.mu.Unlock()
	rows := make([]models.Shipment, len(d.rows))
	copy(rows, d.rows)
	return rows
}

func (d *Dashboard) Days() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.days
}

// Messages trả về thông báo thành công và lỗi hiện tại (banner của UI).
func (d *Dashboard) Messages() (msg, errMsg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.msg, d.err
}

func (d *Dashboard) IsStatusSaving(rowID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.state[rowID]
	return ok && st.statusSaving
}

func (d *Dashboard) IsLocationSaving(rowID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.state[rowID]
	return ok && st.locationSaving
}

func (d *Dashboard) IsEditSaving() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editSaving
}

func (d *Dashboard) EditingID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editingID
}

func (d *Dashboard) EditForm() EditForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editForm
}

// --- Refresh ---

// Refresh tải lại danh sách recent shipments. State theo dòng của các dòng
// không còn hiển thị bị xóa; state của dòng còn lại giữ nguyên.
func (d *Dashboard) Refresh(ctx context.Context, days int) error {
	if days <= 0 {
		days = 5
	}

	resp, err := d.api.RecentShipments(ctx, days, 0)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.err = errorMessage(err, "Failed to load recent shipments")
		return err
	}

	d.rows = resp.Shipments
	d.days = days
	d.err = ""

	// Dọn state của các dòng đã rời khỏi danh sách.
	alive := make(map[string]bool, len(d.rows))
	for _, row := range d.rows {
		alive[row.RowID()] = true
	}
	for rowID := range d.state {
		if !alive[rowID] {
			delete(d.state, rowID)
		}
	}
	return nil
}

// --- Cập nhật trạng thái lạc quan ---

// ChangeStatus áp dụng trạng thái mới lên dòng ngay lập tức, rồi gửi patch
// chỉ chứa status. Thành công: merge bản ghi server trả về. Thất bại: hoàn
// tác về trạng thái cũ và hiển thị lỗi. Nếu dòng đang lưu trạng thái thì
// bỏ qua (chặn request trùng).
func (d *Dashboard) ChangeStatus(ctx context.Context, rowID, newStatus string) error {
	d.mu.Lock()
	row, ok := d.findRowLocked(rowID)
	if !ok {
		d.mu.Unlock()
		return errors.New("row not found: " + rowID)
	}
	st := d.stateLocked(rowID)
	if st.statusSaving {
		d.mu.Unlock()
		return nil
	}

	attempt := BeginAttempt(row.Status, newStatus, func(v string) {
		if r, ok := d.findRowLocked(rowID); ok {
			r.Status = v
		}
	})
	st.statusSaving = true
	trackingID := row.TrackingID
	d.msg, d.err = "", ""
	d.mu.Unlock()

	resp, err := d.api.UpdateShipment(ctx, trackingID, models.ShipmentPatch{Status: &newStatus})

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		attempt.Revert()
		d.err = errorMessage(err, "Failed to update status")
	} else {
		// Server là nguồn chân lý: merge bản ghi trả về.
		d.mergeRowLocked(resp.UpdatedShipment)
		d.msg = messageOr(resp.Message, "Status updated")
	}
	st.statusSaving = false
	return err
}

// --- Cập nhật vị trí lạc quan ---

// SetLocationDraft ghi bản nháp vị trí cho một dòng.
func (d *Dashboard) SetLocationDraft(rowID, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stateLocked(rowID).locationDraft = &value
}

// LocationDraft trả về bản nháp nếu có, nếu không thì vị trí hiện tại.
func (d *Dashboard) LocationDraft(rowID string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st, ok := d.state[rowID]; ok && st.locationDraft != nil {
		return *st.locationDraft
	}
	if row, ok := d.findRowLocked(rowID); ok {
		return row.CurrentLocation
	}
	return ""
}

// UpdateLocation gửi bản nháp vị trí của một dòng theo cùng protocol lạc
// quan với ChangeStatus. Bản nháp trùng vị trí hiện tại thì không gửi gì.
func (d *Dashboard) UpdateLocation(ctx context.Context, rowID string) error {
	d.mu.Lock()
	row, ok := d.findRowLocked(rowID)
	if !ok {
		d.mu.Unlock()
		return errors.New("row not found: " + rowID)
	}
	st := d.stateLocked(rowID)

	newLoc := row.CurrentLocation
	if st.locationDraft != nil {
		newLoc = *st.locationDraft
	}
	newLoc = strings.TrimSpace(newLoc)
	prevLoc := row.CurrentLocation
	if newLoc == prevLoc || st.locationSaving {
		d.mu.Unlock()
		return nil
	}

	attempt := BeginAttempt(prevLoc, newLoc, func(v string) {
		if r, ok := d.findRowLocked(rowID); ok {
			r.CurrentLocation = v
		}
	})
	st.locationSaving = true
	trackingID := row.TrackingID
	d.msg, d.err = "", ""
	d.mu.Unlock()

	resp, err := d.api.UpdateShipment(ctx, trackingID, models.ShipmentPatch{CurrentLocation: &newLoc})

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		attempt.Revert()
		d.err = errorMessage(err, "Failed to update location")
	} else {
		d.mergeRowLocked(resp.UpdatedShipment)
		d.msg = messageOr(resp.Message, "Location updated")
	}
	st.locationSaving = false
	return err
}

// --- Chế độ sửa toàn dòng ---

// StartEdit nạp bản sao làm việc của dòng vào form sửa.
func (d *Dashboard) StartEdit(rowID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	row, ok := d.findRowLocked(rowID)
	if !ok {
		return errors.New("row not found: " + rowID)
	}

	eta := ""
	if row.EstimatedDelivery != nil {
		eta = row.EstimatedDelivery.Format(DateOnly)
	}
	d.editingID = rowID
	d.editForm = EditForm{
		TrackingID:        row.TrackingID,
		CurrentLocation:   row.CurrentLocation,
		Status:            row.Status,
		EstimatedDelivery: eta,
	}
	return nil
}

// SetEditForm thay bản sao làm việc hiện tại.
func (d *Dashboard) SetEditForm(form EditForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	form.TrackingID = d.editForm.TrackingID // trackingId không sửa được
	d.editForm = form
}

// CancelEdit bỏ bản sao làm việc, không gửi request nào.
func (d *Dashboard) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editingID = ""
	d.editForm = EditForm{}
}

// SaveEdit gửi các field có giá trị trong form (field rỗng không đưa vào
// patch). Thành công: merge kết quả và thoát chế độ sửa. Thất bại: vẫn ở
// chế độ sửa, hiển thị lỗi.
func (d *Dashboard) SaveEdit(ctx context.Context) error {
	d.mu.Lock()
	if d.editForm.TrackingID == "" || d.editSaving {
		d.mu.Unlock()
		return nil
	}

	patch := models.ShipmentPatch{}
	if loc := d.editForm.CurrentLocation; loc != "" {
		patch.CurrentLocation = &loc
	}
	if status := d.editForm.Status; status != "" {
		patch.Status = &status
	}
	if d.editForm.EstimatedDelivery != "" {
		eta, err := time.Parse(DateOnly, d.editForm.EstimatedDelivery)
		if err != nil {
			d.err = "Invalid estimated delivery date"
			d.mu.Unlock()
			return err
		}
		patch.EstimatedDelivery = &eta
	}

	d.editSaving = true
	trackingID := d.editForm.TrackingID
	d.msg, d.err = "", ""
	d.mu.Unlock()

	resp, err := d.api.UpdateShipment(ctx, trackingID, patch)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.editSaving = false
	if err != nil {
		d.err = errorMessage(err, "Failed to update shipment")
		return err
	}

	d.mergeRowLocked(resp.UpdatedShipment)
	d.msg = messageOr(resp.Message, "Shipment updated")
	d.editingID = ""
	d.editForm = EditForm{}
	return nil
}

// --- Helpers nội bộ (gọi khi đã giữ lock) ---

func (d *Dashboard) findRowLocked(rowID string) (*models.Shipment, bool) {
	for i := range d.rows {
		if d.rows[i].RowID() == rowID {
			return &d.rows[i], true
		}
	}
	return nil, false
}

func (d *Dashboard) stateLocked(rowID string) *rowState {
	st, ok := d.state[rowID]
	if !ok {
		st = &rowState{}
		d.state[rowID] = st
	}
	return st
}

func (d *Dashboard) mergeRowLocked(updated models.Shipment) {
	for i := range d.rows {
		if d.rows[i].RowID() == updated.RowID() {
			d.rows[i] = updated
			return
		}
	}
}

// errorMessage hiển thị message của server nguyên văn, hoặc fallback chung
// nếu response không có message.
func errorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
