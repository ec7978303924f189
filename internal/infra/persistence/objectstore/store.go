// Package objectstore persists collection snapshots as objects on a blob
// store (filesystem, memory or S3-compatible).
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"eventdesk/internal/blob"
	"eventdesk/pkg/domain"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.SnapshotStore = (*Store)(nil)

const contentType = "application/json"

// Store keeps each collection at <prefix>/<collection>.json.
type Store struct {
	objects blob.Store
	prefix  string
}

// NewStore wraps objects. prefix may be empty; surrounding slashes are ignored.
func NewStore(objects blob.Store, prefix string) *Store {
	return &Store{objects: objects, prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key for collection.
func (s *Store) Key(collection domain.Collection) string {
	name := string(collection) + ".json"
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Load downloads the object holding collection.
func (s *Store) Load(ctx context.Context, collection domain.Collection) ([]byte, error) {
	_, body, err := s.objects.Get(ctx, s.Key(collection))
	if errors.Is(err, blob.ErrNotFound) {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", collection, err)
	}
	defer func() { _ = body.Close() }()
	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return payload, nil
}

// Save uploads payload, replacing the previous object.
func (s *Store) Save(ctx context.Context, collection domain.Collection, payload []byte) error {
	opts := blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"collection": string(collection)},
	}
	if _, err := s.objects.Put(ctx, s.Key(collection), bytes.NewReader(payload), opts); err != nil {
		return fmt.Errorf("put %s: %w", collection, err)
	}
	return nil
}

// Collections lists the collections that currently have an object under the prefix.
func (s *Store) Collections(ctx context.Context) ([]domain.Collection, error) {
	listPrefix := ""
	if s.prefix != "" {
		listPrefix = s.prefix + "/"
	}
	infos, err := s.objects.List(ctx, listPrefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var out []domain.Collection
	for _, info := range infos {
		name := strings.TrimPrefix(info.Key, listPrefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
			continue
		}
		out = append(out, domain.Collection(strings.TrimSuffix(name, ".json")))
	}
	return out, nil
}

// Driver reports the underlying blob driver.
func (s *Store) Driver() blob.Driver { return s.objects.Driver() }

// Close is a no-op; blob stores hold no long-lived resources.
func (s *Store) Close() error { return nil }
