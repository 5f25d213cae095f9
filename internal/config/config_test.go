package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Len(t, cfg.CORSOrigins, 2)
	assert.False(t, cfg.IsProduction())
}

func TestLoadTestEnvLowersBcryptCost(t *testing.T) {
	t.Setenv("APP_ENV", EnvTest)
	t.Setenv("BCRYPT_COST", "")

	assert.Equal(t, 4, Load().BcryptCost)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
}
