package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoplist.log")
	log, err := New(config.LoggingConfig{Level: "warn", File: path}, false)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("visible")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "visible")
	assert.NotContains(t, string(b), "hidden")
}

func TestVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoplist.log")
	log, err := New(config.LoggingConfig{Level: "error", File: path}, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1))
}

func TestBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "chatty"}, false)
	assert.Error(t, err)
}

func TestForTUIWithoutFileIsNop(t *testing.T) {
	log, err := ForTUI(config.LoggingConfig{}, true)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
}
