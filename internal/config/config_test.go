package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPServer.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "https://api.vatcomply.com", cfg.Provider.BaseURL)
	assert.Equal(t, DriverBadger, cfg.Storage.Driver)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("STORAGE_DRIVER", DriverMemory)
	t.Setenv("APP_TIMEZONE", "America/Sao_Paulo")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=DEBUG\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{Storage: Storage{Driver: "mongo"}, App: App{Timezone: "UTC"}}
		assert.ErrorContains(t, cfg.Validate(), "unknown storage driver")
	})

	t.Run("postgres needs a DSN", func(t *testing.T) {
		cfg := &Config{Storage: Storage{Driver: DriverPostgres}, App: App{Timezone: "UTC"}}
		assert.ErrorContains(t, cfg.Validate(), "STORAGE_POSTGRES_DSN")
	})

	t.Run("bad timezone", func(t *testing.T) {
		cfg := &Config{Storage: Storage{Driver: DriverMemory}, App: App{Timezone: "Mars/Olympus"}}
		assert.ErrorContains(t, cfg.Validate(), "APP_TIMEZONE")
	})
}
