// server/internal/api/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"shipment-tracking-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// ContextAdminID là key chứa id của admin trong context của request.
const ContextAdminID = "admin_id"

// Authenticate là middleware xác thực token JWT cho các route admin.
// 401 chỉ dành cho thiếu header; header đã gửi mà token sai hoặc hết hạn
// là 403. Tiền tố "Bearer " là tùy chọn: token trần vẫn được xác thực.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		// Lưu thông tin admin vào context của request.
		c.Set(ContextAdminID, claims.AdminID)
		c.Next()
	}
}
