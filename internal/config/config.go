package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"golang.org/x/crypto/bcrypt"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port                string
	StorageBackend      string // postgres or memory
	DatabaseURL         string
	RedisURL            string // Optional; enables the login throttle
	FrontendURL         string // Frontend base URL (for dashboard QR codes)
	JWTSecret           string // Secret key for JWT token signing
	JWTTTLHours         int    // JWT token expiration time in hours
	BcryptCost          int
	LoginMaxAttempts    int     // Failed logins allowed per email inside the lockout window
	LoginLockoutMinutes int     // Length of the lockout window
	RateLimitRPS        float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst      int     // Burst size for rate limiting
	RateLimitAuthRPS    float64 // Rate limit for auth endpoints (stricter)
	RateLimitAuthBurst  int     // Burst size for auth endpoints
	LogLevel            string
	OTLPEndpoint        string // Empty disables tracing
	OTLPInsecure        bool
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:                getEnv("PORT", "8000"),
		StorageBackend:      getEnv("STORAGE_BACKEND", StoragePostgres),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		FrontendURL:         getEnv("FRONTEND_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTTTLHours:         getEnvInt("JWT_TTL_HOURS", 720), // 30 days
		BcryptCost:          getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		LoginMaxAttempts:    getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockoutMinutes: getEnvInt("LOGIN_LOCKOUT_MINUTES", 15),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 10),     // 10 requests per second for general API
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 20),     // Allow bursts of 20
		RateLimitAuthRPS:    getEnvFloat("RATE_LIMIT_AUTH_RPS", 5), // 5 requests per second for auth (stricter)
		RateLimitAuthBurst:  getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		OTLPEndpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:        getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var err error
	if c.JWTSecret == "" {
		err = multierr.Append(err, errors.New("JWT_SECRET is required"))
	}
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			err = multierr.Append(err, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case StorageMemory:
	default:
		err = multierr.Append(err, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StoragePostgres, StorageMemory, c.StorageBackend))
	}
	if c.JWTTTLHours <= 0 {
		err = multierr.Append(err, errors.New("JWT_TTL_HOURS must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		err = multierr.Append(err, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitAuthRPS <= 0 {
		err = multierr.Append(err, errors.New("rate limits must be positive"))
	}
	if c.RateLimitBurst <= 0 || c.RateLimitAuthBurst <= 0 {
		err = multierr.Append(err, errors.New("rate limit bursts must be positive"))
	}
	return err
}

// JWTTTL returns the token lifetime.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// LoginLockout returns the failed-login window.
func (c *Config) LoginLockout() time.Duration {
	return time.Duration(c.LoginLockoutMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
