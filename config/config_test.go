package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.False(t, cfg.Game.AtomicGuessCounter)
	assert.Equal(t, "daily-mystery", cfg.Auth.CookieName)
	assert.Len(t, cfg.CORS.AllowedOrigins, 2)
}

func TestLoadFileLocalOverrideAndEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
server:
  port: "9000"
store:
  driver: redis
redis:
  addr: redis:6379
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yaml"), []byte(`
store:
  driver: sqlite
`), 0o644))
	t.Setenv("DAILYMYSTERY_GAME_ATOMIC_GUESS_COUNTER", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Game.AtomicGuessCounter)
}
