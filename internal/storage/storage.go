// Package storage owns the artifacts directory: the persisted table
// snapshot used for change detection and the generated calendar file.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage handles persistence of the pipeline's output files
type Storage struct {
	dir string
}

// New creates a new Storage instance, creating the directory if needed.
func New(dir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating artifacts directory: %w", err)
	}

	return &Storage{
		dir: dir,
	}, nil
}

// Path returns the absolute-ish path of a named artifact file.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Unchanged reports whether the named file already holds exactly content.
// A missing file counts as changed; any other read failure is an error.
func (s *Storage) Unchanged(name, content string) (bool, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data) == content, nil
}

// WriteFile overwrites the named artifact file with content.
func (s *Storage) WriteFile(name, content string) error {
	if err := os.WriteFile(s.Path(name), []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
