package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitDefaults(t *testing.T) {
	cfg := Init()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.DBTimeout)
	assert.NotEmpty(t, cfg.CloudinaryUploadPreset)
}

func TestInitFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("SECRET_KEY", "s3cr3t")
	t.Setenv("DATABASE_URL", "postgres://db.internal:5432/app")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "mycloud")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := Init()

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, "postgres://db.internal:5432/app", cfg.DatabaseURL)
	assert.Equal(t, "mycloud", cfg.CloudinaryCloudName)
	assert.Equal(t, time.Hour, cfg.TokenTTL)

	// Get returns the same loaded instance
	assert.Same(t, cfg, Get())
}

func TestInitBadDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Init()
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
