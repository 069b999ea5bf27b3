// Package jsonfile stores small JSON documents that are read whole,
// changed in memory, and written back whole.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// Document is a whole-document store. Load returns a private copy; changes
// are persisted only by Save. There is no locking across a Load/Save pair,
// so concurrent writers race and the last Save wins.
type Document[T any] interface {
	Load() (T, error)
	Save(v T) error
}

// File is a Document backed by a JSON file on disk.
type File[T any] struct {
	path string
	init func() T
}

// NewFile returns a Document stored at path. When the file does not exist,
// the first Load creates it (and its directory) from init.
func NewFile[T any](path string, init func() T) *File[T] {
	return &File[T]{path: path, init: init}
}

// Path returns the file location.
func (f *File[T]) Path() string {
	return f.path
}

// Load reads and decodes the file, creating it first if missing.
func (f *File[T]) Load() (T, error) {
	var zero T

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		v := f.init()
		if err := f.Save(v); err != nil {
			return zero, err
		}
		return v, nil
	}
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return v, nil
}

// Save encodes v and replaces the file atomically, so readers see either
// the old or the new document, never a partial one.
func (f *File[T]) Save(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.path, err)
	}

	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

// Memory is an in-process Document. Values are stored encoded, so callers
// get the same copy semantics as with File.
type Memory[T any] struct {
	mu   sync.Mutex
	data []byte
	init func() T
}

// NewMemory returns an empty in-memory Document initialized from init on
// first Load.
func NewMemory[T any](init func() T) *Memory[T] {
	return &Memory[T]{init: init}
}

func (m *Memory[T]) Load() (T, error) {
	m.mu.Lock()
	data := m.data
	m.mu.Unlock()

	if data == nil {
		v := m.init()
		if err := m.Save(v); err != nil {
			var zero T
			return zero, err
		}
		return m.Load()
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decoding document: %w", err)
	}
	return v, nil
}

func (m *Memory[T]) Save(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}
