package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound is returned when a key is absent or its stored value
	// cannot be used. Corrupt state is treated as absent so callers
	// fall back to defaults instead of failing.
	ErrNotFound = errors.New("no stored value for key")
)

// Storage keys, kept as the file names under the state directory.
const (
	layoutKey = "stationGrid"
	themeKey  = "primaryColor"
)

// FileStore persists the dashboard layout as JSON documents under a
// state directory, one file per key.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the state directory if needed and returns a store
// rooted at it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// LoadLayout reads the persisted station grid. A missing, empty or
// malformed document yields ErrNotFound.
func (s *FileStore) LoadLayout() ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var grid [][]string
	if err := s.readJSON(layoutKey, &grid); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, layoutKey)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, layoutKey)
	}
	for _, row := range grid {
		if len(row) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, layoutKey)
		}
	}
	return grid, nil
}

// SaveLayout writes the station grid.
func (s *FileStore) SaveLayout(grid [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(layoutKey, grid)
}

// LoadTheme reads the persisted primary color.
func (s *FileStore) LoadTheme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var color string
	if err := s.readJSON(themeKey, &color); err != nil || color == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, themeKey)
	}
	return color, nil
}

// SaveTheme writes the primary color.
func (s *FileStore) SaveTheme(color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(themeKey, color)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) readJSON(key string, out any) error {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// writeJSON writes via a temp file then rename so readers never observe
// a partial document.
func (s *FileStore) writeJSON(key string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}
