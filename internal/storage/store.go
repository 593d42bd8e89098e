// Package storage persists the project registry as a JSON file.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"projman/internal/models"
)

const storageFileName = "projects.json"

// Store reads and writes the registry snapshot on disk.
type Store struct {
	path string
}

// New creates a store backed by the given file path, or the default
// location when path is empty.
func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the default storage file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "projman", storageFileName)
}

// Load reads the snapshot from disk. A missing or malformed file is
// equivalent to a first run and yields the empty store.
func (s *Store) Load() models.StorageData {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Empty()
	}
	return Parse(raw)
}

// Save writes the full snapshot. The parent directory is created on demand.
func (s *Store) Save(data models.StorageData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0644)
}

// FilePath returns the on-disk location of the storage file.
func (s *Store) FilePath() string {
	return s.path
}
