package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PASSWORD", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "local", cfg.ImageStore)
	assert.Equal(t, "media", cfg.MediaDir)
}

func TestLoadConfigMissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfigS3RequiresBucket(t *testing.T) {
	cfg := &Config{
		JWTSecret:  "secret",
		ServerPort: "8080",
		DBHost:     "localhost",
		DBName:     "foodgram",
		DBUser:     "foodgram",
		ImageStore: "s3",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")
}

func TestValidateConfigUnknownImageStore(t *testing.T) {
	cfg := &Config{
		JWTSecret:  "secret",
		ServerPort: "8080",
		DBHost:     "localhost",
		DBName:     "foodgram",
		DBUser:     "foodgram",
		ImageStore: "ftp",
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
}

func TestLoadConfigInvalidRedisDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
}
