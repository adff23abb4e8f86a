package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Store.SeedSample)
	assert.Equal(t, 300*time.Millisecond, cfg.Store.InitialLoadDelay)
	assert.Equal(t, 3*time.Second, cfg.Toasts.DefaultDuration)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
store:
  seed_sample: false
  initial_load_delay: 0s
toasts:
  default_duration: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Store.SeedSample)
	assert.Equal(t, time.Duration(0), cfg.Store.InitialLoadDelay)
	assert.Equal(t, 5*time.Second, cfg.Toasts.DefaultDuration)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
