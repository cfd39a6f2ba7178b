package numbering

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// FileName is the metadata file written at a project root.
const FileName = "metadata.json"

// Store reads and writes the whole Metadata record.
type Store interface {
	Load() (Metadata, error)
	Save(md Metadata) error
}

// FileStore keeps Metadata as a JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore for <projectRoot>/metadata.json.
func NewFileStore(projectRoot string) *FileStore {
	return &FileStore{Path: filepath.Join(projectRoot, FileName)}
}

// Load reads and decodes the file. A missing file is reported with an error
// matching fs.ErrNotExist.
func (s *FileStore) Load() (Metadata, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.Path, Err: err}
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.Path, Err: fmt.Errorf("decoding: %w", err)}
	}
	if md == nil {
		return nil, &PersistenceError{Op: "read", Path: s.Path, Err: errors.New("empty metadata record")}
	}
	return md, nil
}

// Save replaces the file atomically so a crash never leaves half a record.
func (s *FileStore) Save(md Metadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.Path, Err: fmt.Errorf("encoding: %w", err)}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return &PersistenceError{Op: "write", Path: s.Path, Err: err}
	}
	if err := atomic.WriteFile(s.Path, bytes.NewReader(data)); err != nil {
		return &PersistenceError{Op: "write", Path: s.Path, Err: err}
	}
	return nil
}

// MemoryStore is a Store held in memory. LoadErr and SaveErr, when set, are
// returned by the corresponding calls.
type MemoryStore struct {
	md      Metadata
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMemoryStore returns a MemoryStore holding md (nil means nothing stored yet).
func NewMemoryStore(md Metadata) *MemoryStore {
	return &MemoryStore{md: md}
}

func (s *MemoryStore) Load() (Metadata, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.md == nil {
		return nil, &PersistenceError{Op: "read", Err: os.ErrNotExist}
	}
	return maps.Clone(s.md), nil
}

func (s *MemoryStore) Save(md Metadata) error {
	if s.SaveErr != nil {
		return &PersistenceError{Op: "write", Err: s.SaveErr}
	}
	s.md = maps.Clone(md)
	s.Saves++
	return nil
}

// Snapshot returns a copy of the stored record.
func (s *MemoryStore) Snapshot() Metadata {
	return maps.Clone(s.md)
}
