// Package storage persists export artifacts produced by a recording
// session. The contract is deliberately narrow: write named bytes,
// report success or failure.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	filePrefix      = "EMG_Recording_"
	timestampLayout = "2006-01-02T15_04_05"
)

// Store writes a named artifact. Implementations report failure to the
// caller; retrying and error surfacing are the caller's concern.
type Store interface {
	Write(name string, data []byte) error
}

// ExportFilename generates the unique timestamped name for an export
// artifact created at t.
func ExportFilename(t time.Time) string {
	return filePrefix + t.Format(timestampLayout) + ".csv"
}

// FileStore writes artifacts into a local directory.
type FileStore struct {
	dir string
}

// NewFileStore validates the directory and returns a store writing into
// it. The directory must already exist.
func NewFileStore(dir string) (*FileStore, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage directory '%s' does not exist: %w", dir, err)
		}
		return nil, fmt.Errorf("checking storage directory '%s': %w", dir, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("invalid storage directory '%s'", dir)
	}

	return &FileStore{dir: dir}, nil
}

// Write stores the artifact under the given name inside the store
// directory.
func (s *FileStore) Write(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact '%s': %w", path, err)
	}
	return nil
}
