package core

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"eventdesk/internal/blob"
	"eventdesk/internal/infra/persistence/file"
	"eventdesk/internal/infra/persistence/memory"
	"eventdesk/internal/infra/persistence/objectstore"
	"eventdesk/internal/infra/persistence/postgres"
	"eventdesk/internal/infra/persistence/postgres/testutil"
	"eventdesk/internal/infra/persistence/sqlite"
)

func TestOpenSnapshotStoreDrivers(t *testing.T) {
	ctx := context.Background()

	t.Run("file default", func(t *testing.T) {
		dir := t.TempDir()
		got, err := OpenSnapshotStore(ctx, StorageConfig{DataDir: dir})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		fs, ok := got.(*file.Store)
		if !ok || fs.Dir() != dir {
			t.Fatalf("expected file store in %s, got %T", dir, got)
		}
	})

	t.Run("memory", func(t *testing.T) {
		got, err := OpenSnapshotStore(ctx, StorageConfig{Driver: StorageMemory})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if _, ok := got.(*memory.Store); !ok {
			t.Fatalf("expected memory store, got %T", got)
		}
	})

	t.Run("sqlite under data dir", func(t *testing.T) {
		dir := t.TempDir()
		got, err := OpenSnapshotStore(ctx, StorageConfig{Driver: StorageSQLite, DataDir: dir})
		if err != nil {
			t.Skipf("sqlite unavailable: %v", err)
		}
		defer got.Close()
		lite, ok := got.(*sqlite.Store)
		if !ok || lite.Path() != filepath.Join(dir, "eventdesk.db") {
			t.Fatalf("unexpected sqlite store %T", got)
		}
	})

	t.Run("postgres", func(t *testing.T) {
		db, _ := testutil.NewStubDB()
		restore := postgres.OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
		defer restore()
		got, err := OpenSnapshotStore(ctx, StorageConfig{Driver: StoragePostgres, PostgresDSN: "postgres://example/eventdesk"})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if _, ok := got.(*postgres.Store); !ok {
			t.Fatalf("expected postgres store, got %T", got)
		}
	})

	t.Run("blob fs under data dir", func(t *testing.T) {
		dir := t.TempDir()
		got, err := OpenSnapshotStore(ctx, StorageConfig{Driver: StorageBlob, DataDir: dir, BlobPrefix: "snapshots"})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		obj, ok := got.(*objectstore.Store)
		if !ok || obj.Driver() != blob.DriverFilesystem {
			t.Fatalf("expected fs-backed object store, got %T", got)
		}
		if _, err := os.Stat(filepath.Join(dir, "blobs")); err != nil {
			t.Fatalf("expected blob root under data dir: %v", err)
		}
	})

	t.Run("blob memory", func(t *testing.T) {
		got, err := OpenSnapshotStore(ctx, StorageConfig{Driver: StorageBlob, Blob: blob.Config{Driver: blob.DriverMemory}})
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		svc := openService(t, got)
		mustAddClient(t, svc, acmeForm())
		reopened := openService(t, got)
		if _, err := reopened.FindClient(ctx, "C1"); err != nil {
			t.Fatalf("client not persisted through blob store: %v", err)
		}
	})
}

func TestOpenSnapshotStoreErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := OpenSnapshotStore(ctx, StorageConfig{Driver: "floppy"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := OpenSnapshotStore(ctx, StorageConfig{Driver: StorageBlob, Blob: blob.Config{Driver: "tape"}}); err == nil {
		t.Fatalf("expected error for unknown blob driver")
	}
}
