package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if key, _, _ := strings.Cut(kv, "="); strings.HasPrefix(key, "QHG_") {
			t.Setenv(key, "")
		}
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Storage.HistoryLimit)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, strings.HasSuffix(cfg.Storage.Path, filepath.Join("qhg", "history.db")))
	assert.Equal(t, "0.0.0.0:10000", cfg.Server.Addr())
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server:
  port: 8080
  admin_key: secret
  cors_origins: [https://example.org]
storage:
  path: /tmp/qhg.db
  history_limit: 25
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.AdminKey)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/tmp/qhg.db", cfg.Storage.Path)
	assert.Equal(t, 25, cfg.Storage.HistoryLimit)
	assert.Equal(t, "json", cfg.Log.Format)

	// Untouched sections keep their defaults.
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, 100, cfg.Batch.MaxTexts)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.toml", `
[server]
port = 9090

[batch]
max_texts = 7
workers = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Batch.MaxTexts)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, 10, cfg.Storage.HistoryLimit)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "server:\n  port: 8080\n")
	t.Setenv("QHG_PORT", "7070")
	t.Setenv("QHG_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("QHG_RATE_LIMIT_RPS", "2.5")
	t.Setenv("QHG_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_BadEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("QHG_PORT", "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QHG_PORT")
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "server: [not, a, map")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode YAML")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	cfg.Storage.HistoryLimit = 0
	cfg.Log.Level = "verbose"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "server.port")
	assert.Contains(t, msg, "history_limit")
	assert.Contains(t, msg, `log.level "verbose"`)
	assert.Contains(t, msg, `log.format "xml"`)
}

func TestValidate_LevelAliases(t *testing.T) {
	cfg := Default()
	for _, level := range []string{"debug", "DBG", "Info", "wrn", "err"} {
		cfg.Log.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
	assert.Equal(t, "qhg", filepath.Base(filepath.Dir(DefaultPath())))
}
