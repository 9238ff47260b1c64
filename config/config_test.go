package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xiaoapeng/go-eventhub/config"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := config.Default()
	require.Greater(t, cfg.DefaultStackSize, uint32(0))
	require.Greater(t, cfg.IdleEpollBatch, 0)
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventhub.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_stack_size = 4096`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(4096), cfg.DefaultStackSize)
	require.Equal(t, config.Default().IdleEpollBatch, cfg.IdleEpollBatch)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
