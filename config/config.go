// server/config/config.go
package config

import (
	"time"

	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type SeedConfig struct {
	AdminEmail    string `mapstructure:"adminEmail"`
	AdminPassword string `mapstructure:"adminPassword"`
}

// --- Struct Config chính ---

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// TokenTTL đọc jwt.expiration dưới dạng duration, mặc định 24h.
func (c Config) TokenTTL() time.Duration {
	if c.JWT.Expiration == "" {
		return 24 * time.Hour
	}
	ttl, err := time.ParseDuration(c.JWT.Expiration)
	if err != nil || ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	// Ánh xạ key trong YAML tới biến môi trường tương ứng.
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("seed.adminEmail", "SEED_ADMIN_EMAIL")
	viper.BindEnv("seed.adminPassword", "SEED_ADMIN_PASSWORD")

	viper.SetDefault("server.port", "3000")
	viper.SetDefault("mongo.dbName", "shipment_tracking")
	viper.SetDefault("jwt.expiration", "24h")

	// Nếu file không tồn tại, Viper sẽ chỉ sử dụng biến môi trường và default.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
