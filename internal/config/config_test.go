package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "@fitness", cfg.Storage.Namespace)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 50, cfg.Tracker.PointsPerWorkout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
storage:
  backend: redis
  namespace: "@test"
redis:
  address: "redis:6379"
jwt:
  secret: "file-secret"
  expiration: "30m"
tracker:
  timezone: "America/Sao_Paulo"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "@test", cfg.Storage.Namespace)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)

	loc, err := cfg.Tracker.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestTrackerConfig_Location(t *testing.T) {
	loc, err := TrackerConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = TrackerConfig{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.Error(t, err)
}
