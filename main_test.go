package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"source", "config", "watch", "platform", "query", "debug-log"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func TestSetupLoggingWritesFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	closeLog, err := setupLogging(path)
	require.NoError(t, err)

	slog.Debug("library loaded", "records", 3)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "library loaded")
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: ./commands.json\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./commands.json", cfg.Source)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err, "a missing config falls back to defaults")
}
