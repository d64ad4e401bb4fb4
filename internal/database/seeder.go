// server/internal/database/seeder.go
package database

import (
	"context"
	"errors"

	"shipment-tracking-api-server/config"
	"shipment-tracking-api-server/internal/auth"
	"shipment-tracking-api-server/internal/models"
	"shipment-tracking-api-server/internal/store"

	"github.com/rs/zerolog/log"
)

// SeedAdmin tạo tài khoản admin ban đầu nếu config có chỉ định và
// tài khoản chưa tồn tại. Đăng ký qua API chỉ cần chạy một lần; seeder
// giúp môi trường mới dùng được ngay.
func SeedAdmin(ctx context.Context, admins store.AdminStore, cfg config.Config) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		return nil
	}

	_, err := admins.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err == nil {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("Admin already exists. Seeding skipped.")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	log.Info().Str("email", cfg.Seed.AdminEmail).Msg("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	_, err = admins.Create(ctx, models.Admin{
		Email:    cfg.Seed.AdminEmail,
		Password: hashedPassword,
	})
	if err != nil {
		return err
	}

	log.Info().Msg("Admin seeded successfully.")
	return nil
}
