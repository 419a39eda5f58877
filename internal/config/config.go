package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	SMTP    SMTPConfig
	MinIO   MinIOConfig
	Queue   QueueConfig
	Library LibraryConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string // covers
	UseSSL    bool
	PublicURL string // base used when building cover links, falls back to the endpoint
}

type QueueConfig struct {
	Concurrency      int
	CoverCleanupCron string
	HealthPort       string // worker liveness endpoint
}

// LibraryConfig carries the domain knobs of the library itself.
type LibraryConfig struct {
	TimeZone           string // reservation dates are shown in this zone
	MaxCoverSize       int64
	HostURL            string // frontend base used in password reset links
	ResetTokenTTL      time.Duration
	CountCacheTTL      time.Duration
	RecentBooksWindow  time.Duration
	DefaultPageSize    int
	SendMailSynchronly bool // bypass the queue, used when no worker is deployed
}

// Load reads the config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@library.local"),
			FromName: getEnv("SMTP_FROM_NAME", "Library"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "covers"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		Queue: QueueConfig{
			Concurrency:      getEnvInt("WORKER_CONCURRENCY", 5),
			CoverCleanupCron: getEnv("COVER_CLEANUP_CRON", "0 3 * * *"),
			HealthPort:       getEnv("WORKER_HEALTH_PORT", "9999"),
		},
		Library: LibraryConfig{
			TimeZone:           getEnv("LIBRARY_TIMEZONE", "Europe/Sofia"),
			MaxCoverSize:       int64(getEnvInt("LIBRARY_MAX_COVER_SIZE", 512*1024)),
			HostURL:            getEnv("LIBRARY_HOST_URL", "http://localhost:3000"),
			ResetTokenTTL:      getEnvDuration("LIBRARY_RESET_TOKEN_TTL", 15*time.Minute),
			CountCacheTTL:      getEnvDuration("LIBRARY_COUNT_CACHE_TTL", time.Minute),
			RecentBooksWindow:  getEnvDuration("LIBRARY_RECENT_WINDOW", 14*24*time.Hour),
			DefaultPageSize:    getEnvInt("LIBRARY_DEFAULT_PAGE_SIZE", 10),
			SendMailSynchronly: getEnvBool("LIBRARY_SYNC_MAIL", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings that would make the service misbehave silently.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Library.TimeZone); err != nil {
		return fmt.Errorf("LIBRARY_TIMEZONE %q: %w", c.Library.TimeZone, err)
	}
	if c.Library.MaxCoverSize <= 0 {
		return fmt.Errorf("LIBRARY_MAX_COVER_SIZE must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.MinIO.AccessKey == "minioadmin" {
			return fmt.Errorf("MINIO_ACCESS_KEY must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
