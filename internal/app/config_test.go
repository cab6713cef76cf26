package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
server:
  port: 9090
  log_level: debug
backend:
  base_url: https://api.youths4change.org
  timeout: 10s
cache:
  ttl: 2m
media:
  upload_url: https://api.cloudinary.com/v1_1/y4c/image/upload
  upload_preset: unsigned_y4c
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "https://api.youths4change.org", cfg.Backend.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "unsigned_y4c", cfg.Media.UploadPreset)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidateFillsZeroDurations(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: 8080},
		Backend: BackendConfig{BaseURL: "http://localhost:5000"},
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}
