// Package persist writes dataset artifacts to the external store.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoreError reports a failed store operation. Any store failure is fatal
// to the run: an unwritten artifact would break the dataset's frame-index
// contiguity.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("persist: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store is the persistence collaborator. Remove exists so an aborted frame
// can clean up artifacts it already wrote; a frame's triple is either
// complete on disk or absent.
type Store interface {
	EnsureDir(path string) error
	WriteBytes(path string, data []byte) error
	WriteText(path string, data string) error
	Remove(path string) error
}

// FSStore implements Store on the local filesystem.
type FSStore struct{}

// NewFSStore creates a filesystem-backed store.
func NewFSStore() *FSStore {
	return &FSStore{}
}

// EnsureDir creates the directory and any missing parents.
func (s *FSStore) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return &StoreError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

// WriteBytes writes data to path, creating the parent directory if needed.
func (s *FSStore) WriteBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &StoreError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StoreError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteText writes a text file to path.
func (s *FSStore) WriteText(path string, data string) error {
	return s.WriteBytes(path, []byte(data))
}

// Remove deletes the file at path. A missing file is not an error.
func (s *FSStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &StoreError{Op: "remove", Path: path, Err: err}
	}
	return nil
}
