package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/inkpad/internal/config"
)

// useTempWorkspace points the dev-mode XDG directories at a throwaway dir.
func useTempWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	t.Setenv("ENV", "dev")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, 300, cfg.Workspace.SaveDebounceMs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestManager_Load_CreatesDefaultConfigFile(t *testing.T) {
	dir := useTempWorkspace(t)

	manager, err := config.NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	cfg := manager.Get()
	assert.Equal(t, 300, cfg.Workspace.SaveDebounceMs)
	// Derived paths land inside the dev workspace.
	assert.Contains(t, cfg.Database.Path, dir)
	assert.Contains(t, cfg.Documents.NotesDir, dir)

	configFile := filepath.Join(dir, ".dev", "inkpad", "config.toml")
	_, statErr := os.Stat(configFile)
	assert.NoError(t, statErr, "default config file should be written")
}

func TestManager_Load_EnvironmentOverrides(t *testing.T) {
	useTempWorkspace(t)
	t.Setenv("INKPAD_WORKSPACE_SAVE_DEBOUNCE_MS", "750")
	t.Setenv("INKPAD_LOGGING_LEVEL", "debug")

	manager, err := config.NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	cfg := manager.Get()
	assert.Equal(t, 750, cfg.Workspace.SaveDebounceMs)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestManager_Load_InvalidDebounceFallsBack(t *testing.T) {
	useTempWorkspace(t)
	t.Setenv("INKPAD_WORKSPACE_SAVE_DEBOUNCE_MS", "-5")

	manager, err := config.NewManager()
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	assert.Equal(t, 300, manager.Get().Workspace.SaveDebounceMs)
}
