// internal/api/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"shipment-tracking-api-server/internal/auth"
	"shipment-tracking-api-server/internal/models"
	"shipment-tracking-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	Admins    store.AdminStore
	JWTSecret []byte
	TokenTTL  time.Duration
}

// --- Structs cho Request Body ---

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --- Handlers ---

// Register tạo tài khoản admin. Chỉ cần chạy một lần khi khởi tạo hệ thống.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("Error hashing admin password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering admin"})
		return
	}

	_, err = h.Admins.Create(c.Request.Context(), models.Admin{
		Email:    req.Email,
		Password: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Admin already exists"})
			return
		}
		log.Error().Err(err).Msg("Error registering admin")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully"})
}

// Login so khớp mật khẩu và phát hành bearer token có thời hạn.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	admin, err := h.Admins.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
			return
		}
		log.Error().Err(err).Msg("Error logging in")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, admin.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, admin.ID.Hex(), h.TokenTTL)
	if err != nil {
		log.Error().Err(err).Msg("Error generating token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token})
}

// Debug xác nhận router auth đã được mount.
func (h *AuthHandler) Debug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
