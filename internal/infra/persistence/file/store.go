// Package file persists each collection snapshot as <dir>/<collection>.json.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"eventdesk/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.SnapshotStore = (*Store)(nil)

const defaultDir = "./data"

// Store writes one JSON document per collection into a directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore returns a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the snapshots.
func (s *Store) Dir() string { return s.dir }

// PathFor returns the file that holds collection.
func (s *Store) PathFor(collection domain.Collection) string {
	return filepath.Join(s.dir, string(collection)+".json")
}

// Load reads the snapshot file for collection.
func (s *Store) Load(ctx context.Context, collection domain.Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(s.PathFor(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return payload, nil
}

// Save writes payload to a temp file in the same directory and renames it
// over the previous snapshot so readers never observe a partial file.
func (s *Store) Save(ctx context.Context, collection domain.Collection, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, "."+string(collection)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", collection, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.PathFor(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (s *Store) Close() error { return nil }
