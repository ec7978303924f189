package domain

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by SnapshotStore.Load when nothing has been
// saved for the collection yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is the minimal abstraction over durable backends. Each
// collection is stored as one opaque payload that is always read and written
// whole.
type SnapshotStore interface {
	// Load returns the last payload saved for collection, or an error wrapping
	// ErrSnapshotNotFound when there is none.
	Load(ctx context.Context, collection Collection) ([]byte, error)
	// Save replaces the payload stored for collection.
	Save(ctx context.Context, collection Collection, payload []byte) error
	// Close releases backend resources.
	Close() error
}
