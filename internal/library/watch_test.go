package library

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Start()
	defer func() { _ = w.Stop() }()

	// Writes to other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte(`{"linux":[]}`), 0o600))

	select {
	case ev := <-w.Events:
		assert.Equal(t, filepath.Clean(path), ev.Path)
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "commands.json"))
	assert.Error(t, err)
}
