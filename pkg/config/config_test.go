package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "creative_showcase", cfg.MongoDatabase)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "./uploads", cfg.UploadDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()

	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}
