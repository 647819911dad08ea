package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ":8181", cfg.Server.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, time.Second, cfg.Storage.Latency)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Amqp.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTtl)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	yaml := "storage:\n  backend: sqlite\n  path: /tmp/drafts.db\n  latency: 250ms\ndb:\n  host: db.internal\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("ONBOARDING_DB_HOST", "override.internal")
	t.Setenv("ONBOARDING_AMQP_ENABLED", "true")

	// when
	cfg, err := Load(path)

	// then
	require.NoError(t, err)
	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/drafts.db", cfg.Storage.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Latency)
	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.True(t, cfg.Amqp.Enabled)
	assert.Equal(t, "onboarding", cfg.Database.Name)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}
