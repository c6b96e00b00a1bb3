// Package jsonfile persists a project (sequence plus display state) as a
// JSON file. It is the reference implementation of the store boundary:
// the editing core itself never touches it, the CLI and TUI drive it.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/framecut/framecut/internal/core/timeline"
)

// FormatVersion is bumped when the on-disk shape changes.
const FormatVersion = 1

// ErrNotFound is returned when the project file does not exist.
var ErrNotFound = errors.New("project file not found")

// Project is the root JSON structure stored on disk.
type Project struct {
	Version  int                `json:"version"`
	Sequence *timeline.Sequence `json:"sequence"`
	// Selected persists the selection set between sessions.
	Selected []string `json:"selected,omitempty"`
}

// ProjectStore reads and writes one project file. Writes are atomic:
// a temp file in the same directory is renamed over the target.
type ProjectStore struct {
	path string
	mu   sync.RWMutex
}

// NewProjectStore creates a store for the project file at path.
func NewProjectStore(path string) *ProjectStore {
	return &ProjectStore{path: path}
}

// Path returns the backing file path.
func (s *ProjectStore) Path() string {
	return s.path
}

// Load reads and validates the project. Returns ErrNotFound when the
// file does not exist.
func (s *ProjectStore) Load() (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read project: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Version > FormatVersion {
		return nil, fmt.Errorf("project version %d newer than supported %d", p.Version, FormatVersion)
	}
	if p.Sequence == nil {
		return nil, fmt.Errorf("project has no sequence")
	}
	if err := p.Sequence.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	return &p, nil
}

// Save validates and writes the project atomically.
func (s *ProjectStore) Save(p *Project) error {
	if p.Sequence == nil {
		return fmt.Errorf("project has no sequence")
	}
	if err := p.Sequence.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	p.Version = FormatVersion

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".framecut-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close project: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace project: %w", err)
	}
	return nil
}
