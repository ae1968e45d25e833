// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config captures runtime configuration values.
type Config struct {
	StoreDriver       string
	SQLitePath        string
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	StoreNamespace    string
	StoreQuotaBytes   int64
	PrepSeconds       int
	RestSeconds       int
	CaloriesPerMinute float64
	HTTPAddress       string
	TickInterval      time.Duration
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		StoreDriver:       getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:        getEnv("SQLITE_PATH", defaultSQLitePath()),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getIntEnv("REDIS_DB", 0),
		StoreNamespace:    getEnv("STORE_NAMESPACE", "fittrack_"),
		StoreQuotaBytes:   int64(getIntEnv("STORE_QUOTA_BYTES", 5<<20)),
		PrepSeconds:       getIntEnv("PREP_SECONDS", 5),
		RestSeconds:       getIntEnv("REST_SECONDS", 60),
		CaloriesPerMinute: getFloatEnv("CALORIES_PER_MINUTE", 5),
		HTTPAddress:       getEnv("HTTP_ADDRESS", "127.0.0.1:8080"),
		TickInterval:      getDurationEnv("TICK_INTERVAL", time.Second),
	}
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "fittrack", "fittrack.db")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
