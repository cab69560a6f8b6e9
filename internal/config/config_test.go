package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+), which is unavailable on the
// Go 1.21 toolchain this module is built with.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("CONFIG_ENV", "nonexistent")
	chdir(t, t.TempDir())

	cfg, err := Load()
	req.NoError(err)
	req.Equal("release", cfg.Mode)
	req.Equal(8080, cfg.Port)
	req.Equal(int64(32768), cfg.ReadLimit)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(5*time.Minute, cfg.OfflineTTL)
	req.Equal(5*time.Minute, cfg.SweepInterval)
	req.False(cfg.RelayOnly)
}

func TestLoad_From_File(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	req.NoError(os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := []byte(`
mode: debug
port: 9999
jwt_secret: sekret
relay_only: true
offline_ttl: 90s
allowed_origins:
  - https://app.example.com
`)
	req.NoError(os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), yaml, 0o644))
	t.Setenv("CONFIG_ENV", "test")
	chdir(t, dir)

	cfg, err := Load()
	req.NoError(err)
	req.Equal("debug", cfg.Mode)
	req.Equal(9999, cfg.Port)
	req.Equal("sekret", cfg.JWTSecret)
	req.True(cfg.RelayOnly)
	req.Equal(90*time.Second, cfg.OfflineTTL)
	req.Equal([]string{"https://app.example.com"}, cfg.AllowedOrigins)
}
