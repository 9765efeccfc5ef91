// Package snapshotstore holds the host-side collaborators that give
// the engine's save_state/load_state bytes somewhere durable to live:
// a local file and, when DB_SOURCE is configured, a single-row
// Postgres bytea column. Both are pure host concerns per spec.md §1 —
// the core never imports this package.
package snapshotstore

import (
	"fmt"
	"os"
)

// FileStore persists the snapshot blob as a single file on disk.
type FileStore struct {
	Path string
}

// Load reads the whole snapshot file. A missing file is reported as
// os.ErrNotExist so callers can distinguish "no snapshot yet" from a
// real I/O failure.
func (f FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("filestore: read %s: %w", f.Path, err)
	}
	return data, nil
}

// Save writes data to Path, replacing any existing file atomically via
// a temp-file rename.
func (f FileStore) Save(data []byte) error {
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("filestore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("filestore: rename %s to %s: %w", tmp, f.Path, err)
	}
	return nil
}
