package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cv-builder/internal/model"
)

// FileStore holds the single YAML document the whole application revolves
// around. Reads and writes are whole-file; there is no locking and no
// partial update, matching the one-user-one-file model.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// LoadText returns the raw document text.
func (s *FileStore) LoadText() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read cv data: %w", err)
	}
	return string(data), nil
}

// SaveText overwrites the document wholesale. Callers validate first;
// nothing malformed should reach disk.
func (s *FileStore) SaveText(text string) error {
	if err := os.WriteFile(s.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write cv data: %w", err)
	}
	return nil
}

// Parse unmarshals document text into a generic map for schema validation.
func Parse(text string) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := yaml.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("parse yaml: document is empty")
	}
	return m, nil
}

// Decode unmarshals document text into a typed record. The text is assumed
// to have passed schema validation already.
func Decode(text string) (*model.CVRecord, error) {
	var rec model.CVRecord
	if err := yaml.Unmarshal([]byte(text), &rec); err != nil {
		return nil, fmt.Errorf("decode cv record: %w", err)
	}
	return &rec, nil
}
