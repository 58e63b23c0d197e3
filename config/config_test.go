package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_PROJECT_ID", "ideaflow-test")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 72, cfg.Wizard.SessionTTLHours)
	assert.Equal(t, 20, cfg.Wizard.GenerateRPM)
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 24, cfg.Wizard.SessionTTLHours)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestValidate(t *testing.T) {
	t.Run("missing project id", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("FIREBASE_PROJECT_ID", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FIREBASE_PROJECT_ID")
	})

	t.Run("missing api key", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_TTL_HOURS", "0")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_TTL_HOURS")
	})
}
