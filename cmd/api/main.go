// server/cmd/api/main.go
package main

import (
	"context"
	"os"
	"time"

	"shipment-tracking-api-server/config"
	"shipment-tracking-api-server/internal/api/routes"
	"shipment-tracking-api-server/internal/database"
	"shipment-tracking-api-server/internal/socket"
	"shipment-tracking-api-server/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env chỉ dành cho môi trường dev; thiếu file không phải là lỗi.
	godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// 2. Kết nối MongoDB
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("MongoDB connection failed")
	}
	log.Info().Str("db", cfg.Mongo.DBName).Msg("MongoDB connected successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// 3. Đảm bảo các index cần thiết (unique trackingId, unique email, ...)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure indexes")
	}

	shipments := store.NewMongoShipmentStore(db)
	admins := store.NewMongoAdminStore(db)

	// 4. Seed tài khoản admin ban đầu nếu config có chỉ định
	if err := database.SeedAdmin(ctx, admins, cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin")
	}

	// 5. Hub đẩy sự kiện lô hàng tới các dashboard đang mở
	wsHub := socket.NewHub()

	// 6. Truyền tất cả các thành phần cần thiết vào router
	router := routes.SetupRouter(shipments, admins, wsHub, cfg, logger)

	// 7. Start server
	log.Info().Str("port", cfg.Server.Port).Msg("Starting API server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to run server")
	}
}
