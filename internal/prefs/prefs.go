// Package prefs persists small user preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AutoCloseKey names the auto-close-after-copy preference
const AutoCloseKey = "autoClose"

// Store holds boolean preferences backed by a YAML file
type Store struct {
	path   string
	values map[string]bool
}

// DefaultPath returns the preference file location under the user's state dir
func DefaultPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(base, "terminal_assist", "prefs.yaml")
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]bool)}

	data, err := os.ReadFile(filepath.Clean(path)) //nolint:gosec // path from known location
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", path, err)
	}
	if s.values == nil {
		s.values = make(map[string]bool)
	}
	return s, nil
}

// Memory returns a store that is never written to disk
func Memory() *Store {
	return &Store{values: make(map[string]bool)}
}

// Path returns the backing file, or "" for an in-memory store
func (s *Store) Path() string { return s.path }

// Bool returns the preference for key, false when absent
func (s *Store) Bool(key string) bool {
	return s.values[key]
}

// SetBool updates key and writes the store to disk
func (s *Store) SetBool(key string, value bool) error {
	s.values[key] = value
	return s.save()
}

// AutoClose reports whether the overlay closes after a successful copy
func (s *Store) AutoClose() bool { return s.Bool(AutoCloseKey) }

// SetAutoClose persists the auto-close preference
func (s *Store) SetAutoClose(v bool) error { return s.SetBool(AutoCloseKey, v) }

// save writes the store atomically via a temp file
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create preferences dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	slog.Debug("preferences saved", "path", s.path)
	return nil
}
