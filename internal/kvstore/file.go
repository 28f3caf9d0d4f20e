package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps every key in a single JSON document on disk. Each Put
// rewrites the whole document through a temp file and rename.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store writing to path. The file is created lazily.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if errors.Is(err, ErrCorrupt) {
		// A write replaces the unreadable document; the old one is kept aside.
		if err := os.Rename(s.path, s.path+".corrupt"); err != nil {
			return fmt.Errorf("kvstore: move aside %s: %w", s.path, err)
		}
		entries = make(map[string]string)
	} else if err != nil {
		return err
	}
	entries[key] = string(value)
	return atomicWriteFileJSON(s.path, entries)
}

func (s *FileStore) read() (map[string]string, error) {
	entries := make(map[string]string)

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("kvstore: open %s: %w", s.path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, s.path, err)
	}
	return entries, nil
}

func atomicWriteFileJSON(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}

	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

var _ Store = (*FileStore)(nil)
