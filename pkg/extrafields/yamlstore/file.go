package yamlstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-cascade/pkg/extrafields"
)

// FileStore is a WritableStore persisted to one YAML file. Every mutation
// rewrites the file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	memory *extrafields.MemoryStore
}

var _ extrafields.WritableStore = (*FileStore)(nil)

// Open loads path, treating a missing file as an empty store.
func Open(path string) (*FileStore, error) {
	records, err := readFile(path)
	if err != nil {
		return nil, err
	}
	memory, err := extrafields.NewMemoryStore(records...)
	if err != nil {
		return nil, fmt.Errorf("yamlstore: %s: %w", path, err)
	}
	return &FileStore{path: path, memory: memory}, nil
}

func readFile(path string) ([]extrafields.Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("yamlstore: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, pluginType, siteID string) (extrafields.Record, error) {
	return s.memory.Get(ctx, pluginType, siteID)
}

func (s *FileStore) List(ctx context.Context) ([]extrafields.Record, error) {
	return s.memory.List(ctx)
}

func (s *FileStore) Put(ctx context.Context, record extrafields.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.memory.Put(ctx, record); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *FileStore) Delete(ctx context.Context, pluginType, siteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.memory.Delete(ctx, pluginType, siteID); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *FileStore) flush(ctx context.Context) error {
	records, err := s.memory.List(ctx)
	if err != nil {
		return err
	}
	data, err := Marshal(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("yamlstore: create %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("yamlstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("yamlstore: replace %s: %w", s.path, err)
	}
	return nil
}
