package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileStore keeps the record in a single local file. Paths ending in .yaml or
// .yml are written as YAML, anything else as indented JSON.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the record, falling back to DefaultRecord when the file is missing.
func (s *FileStore) Load(ctx context.Context) (*Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memory bank: %w", err)
	}

	var r Record
	if s.isYAML() {
		err = yaml.Unmarshal(data, &r)
	} else {
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode memory bank %s: %w", s.path, err)
	}
	r.normalize()
	return &r, nil
}

// Save writes the record to a temp file in the same directory and renames it
// over the target so readers never see a partial file.
func (s *FileStore) Save(ctx context.Context, r *Record) error {
	r.normalize()

	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode memory bank: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write memory bank: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync memory bank: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close memory bank: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace memory bank: %w", err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

var _ Store = (*FileStore)(nil)
