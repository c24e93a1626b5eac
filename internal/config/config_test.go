package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "STORAGE_BACKEND", "DATABASE_URL", "JWT_SECRET", "JWT_TTL_HOURS",
		"BCRYPT_COST", "LOGIN_MAX_ATTEMPTS", "RATE_LIMIT_RPS", "OTEL_EXPORTER_OTLP_INSECURE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockout())
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.False(t, cfg.OTLPInsecure)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("JWT_TTL_HOURS", "1")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, time.Hour, cfg.JWTTTL())
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func validConfig() *Config {
	return &Config{
		StorageBackend:     StoragePostgres,
		DatabaseURL:        "postgres://localhost/vividexpense",
		JWTSecret:          "secret",
		JWTTTLHours:        720,
		BcryptCost:         10,
		RateLimitRPS:       10,
		RateLimitBurst:     20,
		RateLimitAuthRPS:   5,
		RateLimitAuthBurst: 10,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	mem := validConfig()
	mem.StorageBackend = StorageMemory
	mem.DatabaseURL = ""
	assert.NoError(t, mem.Validate())

	bad := validConfig()
	bad.JWTSecret = ""
	bad.DatabaseURL = ""
	bad.BcryptCost = 99
	err := bad.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")

	unknown := validConfig()
	unknown.StorageBackend = "mongo"
	assert.ErrorContains(t, unknown.Validate(), "STORAGE_BACKEND")
}
