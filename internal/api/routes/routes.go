// server/internal/api/routes/routes.go
package routes

import (
	"shipment-tracking-api-server/config"
	"shipment-tracking-api-server/internal/api/handlers"
	"shipment-tracking-api-server/internal/api/middleware"
	"shipment-tracking-api-server/internal/socket"
	"shipment-tracking-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route.
func SetupRouter(
	shipments store.ShipmentStore,
	admins store.AdminStore,
	wsHub *socket.Hub,
	cfg config.Config,
	logger zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.Default())

	jwtSecret := []byte(cfg.JWT.Secret)

	// Khởi tạo các handlers
	authHandler := &handlers.AuthHandler{Admins: admins, JWTSecret: jwtSecret, TokenTTL: cfg.TokenTTL()}
	adminHandler := &handlers.AdminHandler{Shipments: shipments, Hub: wsHub}
	shipmentHandler := &handlers.ShipmentHandler{Shipments: shipments}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: jwtSecret}

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health)

		// === CÁC ROUTE KHÔNG YÊU CẦU XÁC THỰC ===

		// Nhóm API authentication
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/_debug", authHandler.Debug)
		}

		// Nhóm API tra cứu công khai cho khách hàng
		shipment := api.Group("/shipment")
		{
			shipment.GET("/by-phone/:phone", shipmentHandler.GetShipmentsByPhone)
			shipment.POST("/lookup", shipmentHandler.LookupShipment)
			shipment.GET("/:trackingId", shipmentHandler.GetShipment)
		}

		// === CÁC ROUTE ADMIN ===

		admin := api.Group("/admin")
		{
			// Ping và WebSocket tự xác thực theo cách riêng,
			// không đi qua middleware Authenticate.
			admin.GET("/ping", adminHandler.Ping)
			admin.GET("/ws", webSocketHandler.ServeWs)

			// Các thao tác ghi yêu cầu bearer token hợp lệ.
			protected := admin.Group("/")
			protected.Use(middleware.Authenticate(jwtSecret))
			{
				protected.POST("/create-shipment", adminHandler.CreateShipment)
				protected.PUT("/update-shipment/:trackingId", adminHandler.UpdateShipment)
				protected.GET("/recent-shipments", adminHandler.RecentShipments)
			}
		}
	}

	return router
}
