package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	cfg := LoadConfig()
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CACHE_TTL", "bogus")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("LOGIN_BURST", "9")
	cfg := LoadConfig()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL, "invalid durations fall back")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 9, cfg.LoginBurst)
}

func TestValidate(t *testing.T) {
	prod := &Config{IsProd: true, DBDriver: "mysql"}
	assert.Error(t, prod.Validate(), "production needs a secret")

	dev := &Config{DBDriver: "postgres"}
	require.NoError(t, dev.Validate())
	assert.NotEmpty(t, dev.JWTSecret)

	bad := &Config{JWTSecret: "s", DBDriver: "oracle"}
	assert.Error(t, bad.Validate())
}
