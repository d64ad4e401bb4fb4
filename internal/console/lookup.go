// internal/console/lookup.go
package console

import (
	"errors"
	"strings"
	"unicode"
)

// LookupKind phân loại một chuỗi tra cứu tự do.
type LookupKind int

const (
	// LookupTracking: tra cứu theo mã vận đơn.
	LookupTracking LookupKind = iota
	// LookupPhone: tra cứu theo số điện thoại.
	LookupPhone
)

// LookupQuery là kết quả phân loại: loại tra cứu và giá trị để gửi đi.
type LookupQuery struct {
	Kind  LookupKind
	Value string
}

var ErrEmptyQuery = errors.New("please enter a tracking ID or phone number")

// ClassifyQuery quyết định một chuỗi nhập tự do là số điện thoại hay mã
// vận đơn, không cần toggle chọn chế độ:
//  1. Cắt khoảng trắng hai đầu.
//  2. Bỏ khoảng trắng và dấu gạch ngang bên trong để được chuỗi "compact".
//  3. Nếu compact toàn chữ số và có từ 6 chữ số trở lên thì là số điện
//     thoại (giá trị là chuỗi chữ số); ngược lại là mã vận đơn (giá trị là
//     chuỗi đã cắt khoảng trắng, không phải chuỗi compact).
//
// Mã vận đơn thuần số từ 6 chữ số trở lên sẽ bị phân loại nhầm thành số
// điện thoại. Đây là nhập nhằng đã biết của heuristic, giữ nguyên chứ
// không tự sửa.
func ClassifyQuery(raw string) (LookupQuery, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LookupQuery{}, ErrEmptyQuery
	}

	var compact, digits strings.Builder
	for _, r := range trimmed {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		compact.WriteRune(r)
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() >= 6 && digits.Len() == compact.Len() {
		return LookupQuery{Kind: LookupPhone, Value: digits.String()}, nil
	}
	return LookupQuery{Kind: LookupTracking, Value: trimmed}, nil
}
