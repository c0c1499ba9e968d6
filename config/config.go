package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	Port      string
	SecretKey string
	LogLevel  string
	GinMode   string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPath:     getEnv("DB_PATH", "app.db"),
		Port:       getEnv("PORT", "5000"),
		SecretKey:  getEnv("SECRET_KEY", "dev-secret-key-change-in-production"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		GinMode:    os.Getenv("GIN_MODE"),
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
