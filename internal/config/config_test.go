package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SHOPLIST_BACKEND", "SHOPLIST_DATA_DIR", "SHOPLIST_THEME",
		"SHOPLIST_ADDR", "SHOPLIST_LOG_LEVEL", "SHOPLIST_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, ":8080", cfg.Web.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", "shoplist.yaml")

	cfg := DefaultConfig()
	cfg.Backend = BackendSQLite
	cfg.Logging.File = "shoplist.log"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "shoplist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, BackendJSON, cfg.Backend)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHOPLIST_BACKEND", "memory")
	t.Setenv("SHOPLIST_ADDR", "127.0.0.1:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "127.0.0.1:9000", cfg.Web.Addr)
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "redis"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "shoplist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHOPLIST_BACKEND", "bogus")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "bogus", cfg.Backend)
	assert.Error(t, cfg.Validate())

	cfg.Backend = BackendMemory
	assert.NoError(t, cfg.Validate())
}
