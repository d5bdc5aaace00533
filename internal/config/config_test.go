package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adrctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("ADRCTL_CONFIG", "")
	t.Setenv("ADRCTL_CACHE_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, BackendCookie, cfg.Storage.Backend)
	assert.Equal(t, 30*time.Second, cfg.Session.RefreshSkew)
	assert.Equal(t, time.Minute, cfg.Session.Keepalive)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "cookies.json"), cfg.CookiePath)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "cache.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "debug.log"), cfg.LogPath)
}

func TestLoad_FileWithEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
cache_dir: `+dir+`
api:
  base_url: https://adr.example.org/api/v1
  timeout: 3s
storage:
  backend: sqlite
`)
	t.Setenv("ADRCTL_API_TIMEOUT", "7s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://adr.example.org/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout, "env overrides file")
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr, "defaults fill gaps")
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.DBPath)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: memory\n")
	t.Setenv("ADRCTL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "stat failed")
}

func TestLoad_UnknownBackend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: floppy\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, `unknown storage backend "floppy"`)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.CacheDir)
	assert.Equal(t, filepath.Join(cfg.CacheDir, "cookies.json"), cfg.CookiePath)
}
