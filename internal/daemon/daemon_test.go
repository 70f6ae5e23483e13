package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/quantum-gematria/internal/config"
	"github.com/talgya/quantum-gematria/internal/persistence"
)

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Storage.Path = filepath.Join(t.TempDir(), "nested", "history.db")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, Run(ctx, cfg, "test"))

	_, err := os.Stat(cfg.Storage.Path)
	require.NoError(t, err)

	db, err := persistence.Open(cfg.Storage.Path)
	require.NoError(t, err)
	defer db.Close()
	v, err := db.GetMeta(context.Background(), "schema_version")
	require.NoError(t, err)
	assert.Equal(t, persistence.SchemaVersion, v)
}

func TestRun_BadStoragePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(blocker, "history.db")

	err := Run(context.Background(), cfg, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create data dir")
}
