package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV stores key-value pairs in a single JSON file, rewritten in full
// on every Set.
type FileKV struct {
	filename string
	data     map[string]string
	mu       sync.RWMutex
}

func OpenFile(filename string) (*FileKV, error) {
	if filename == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, err
	}

	s := &FileKV{
		filename: filename,
		data:     map[string]string{},
	}
	if _, err := os.Stat(filename); err == nil {
		if err := s.load(); err != nil {
			return nil, fmt.Errorf("failed to load store: %w", err)
		}
	}
	return s, nil
}

func (s *FileKV) load() error {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *FileKV) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filename, data, 0o644)
}

func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	return value, ok, nil
}

func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

func (s *FileKV) Close() error {
	return nil
}
