package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_EXPIRE_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "PulsePadDB", cfg.Mongo.Database)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expire)
	assert.Equal(t, 5, cfg.Auth.LoginRatePerMinute)
	assert.True(t, cfg.App.SeedOnStart)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "pulse_test")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_FROM", "noreply@example.com")
	t.Setenv("APP_BASE_URL", "https://pulse.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pulse_test", cfg.Mongo.Database)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expire)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "https://pulse.example.com", cfg.App.BaseURL)
}

func TestLoadRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingMongoURI)
}

func TestLoadJWTSecret(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	t.Run("production requires a secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("development has no built-in secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		t.Setenv("JWT_SECRET", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.JWT.Secret)
		assert.False(t, cfg.App.Production())
	})

	t.Run("configured secret is used", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "s3cret-from-env")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "s3cret-from-env", cfg.JWT.Secret)
	})
}
